package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
)

func testResult() Result {
	return Result{
		WordCount:     5,
		Correct:       20,
		Wrong:         4,
		Mastered:      5,
		TotalMastered: 17,
		Points:        215,
		Plan:          5,
		GoalReached:   true,
		Duration:      4*time.Minute + 12*time.Second,
		Missed:        []string{"durian", "elephant"},
	}
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                            { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                     { return "" }
func (stubScreen) Title() string                            { return "again" }

func TestAccuracy(t *testing.T) {
	assert.InDelta(t, 20.0/24.0, testResult().Accuracy(), 1e-9)
	assert.Zero(t, Result{}.Accuracy())
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult(), nil)
	view := s.View(100, 30)

	assert.Contains(t, view, "Session complete!")
	assert.Contains(t, view, "4:12")
	assert.Contains(t, view, "Accuracy: 83%")
	assert.Contains(t, view, "Daily goal 5/5  reached!")
	assert.Contains(t, view, "durian")
}

func TestSummaryScreen_EmptySession(t *testing.T) {
	s := New(Result{}, nil)
	assert.Contains(t, s.View(80, 24), "Nothing to practise")
}

func TestSummaryScreen_EnterReturnsHome(t *testing.T) {
	s := New(testResult(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopToRootMsg{}, cmd())
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	built := 0
	s := New(testResult(), func() screen.Screen { built++; return stubScreen{} })

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "again", msg.Screen.Title())
	assert.Equal(t, 1, built)
	assert.Len(t, s.KeyHints(), 2)
}

func TestSummaryScreen_PlayAgainDisabled(t *testing.T) {
	s := New(testResult(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	assert.Nil(t, cmd)
	assert.Len(t, s.KeyHints(), 1)
}

func TestSummaryScreen_Status(t *testing.T) {
	st := New(testResult(), nil).Status()
	assert.Equal(t, 17, st.TotalMastered)
	assert.Equal(t, 215, st.Points)
}
