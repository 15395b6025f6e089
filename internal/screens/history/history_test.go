package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/store"
)

type fakeSource struct {
	events []store.SessionEvent
	err    error
	opts   store.QueryOpts
}

func (f *fakeSource) QuerySessionEvents(_ context.Context, opts store.QueryOpts) ([]store.SessionEvent, error) {
	f.opts = opts
	return f.events, f.err
}

func event(action, id string, correct, wrong int, goal bool) store.SessionEvent {
	return store.SessionEvent{
		Timestamp: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		SessionEventData: store.SessionEventData{
			SessionID:      id,
			Action:         action,
			Plan:           5,
			WordCount:      8,
			CorrectAnswers: correct,
			WrongAnswers:   wrong,
			Mastered:       6,
			Points:         correct * 10,
			GoalReached:    goal,
			DurationSecs:   125,
		},
	}
}

func load(t *testing.T, src *fakeSource) *HistoryScreen {
	t.Helper()
	s := New(src)
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	return s
}

func TestLoadKeepsEndedSessions(t *testing.T) {
	src := &fakeSource{events: []store.SessionEvent{
		event(store.SessionStart, "b", 0, 0, false),
		event(store.SessionEnd, "a", 30, 10, true),
		event(store.SessionStart, "a", 0, 0, false),
	}}
	s := load(t, src)

	require.Len(t, s.sessions, 1)
	assert.Equal(t, "a", s.sessions[0].SessionID)
	assert.Equal(t, queryLimit, src.opts.Limit)

	view := s.View(100, 30)
	assert.Contains(t, view, "2:05")
	assert.Contains(t, view, "6/8 mastered")
	assert.Contains(t, view, "75% accuracy")
}

func TestExpandShowsDetails(t *testing.T) {
	s := load(t, &fakeSource{events: []store.SessionEvent{
		event(store.SessionEnd, "a", 4, 1, false),
	}})
	assert.NotContains(t, s.View(100, 30), "Points: 40")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(100, 30)
	assert.Contains(t, view, "Points: 40")
	assert.Contains(t, view, "Daily plan: 5 words, not reached")
}

func TestNavigationClamps(t *testing.T) {
	s := load(t, &fakeSource{events: []store.SessionEvent{
		event(store.SessionEnd, "a", 1, 0, false),
		event(store.SessionEnd, "b", 1, 0, false),
	}})

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
}

func TestEmptyAndError(t *testing.T) {
	assert.Contains(t, New(&fakeSource{}).View(80, 20), "Loading history")
	assert.Contains(t, load(t, &fakeSource{}).View(80, 20), "No sessions yet")
	assert.Contains(t, load(t, &fakeSource{err: errors.New("disk gone")}).View(80, 20), "Error: disk gone")
}

func TestEscPops(t *testing.T) {
	s := load(t, &fakeSource{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
