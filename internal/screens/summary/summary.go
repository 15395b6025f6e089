package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Result is what a finished drill reports.
type Result struct {
	WordCount     int
	Correct       int
	Wrong         int
	Mastered      int
	TotalMastered int
	Points        int
	Plan          int
	GoalReached   bool
	Duration      time.Duration
	// Missed lists words answered wrong at least once, in first-miss order.
	Missed []string
}

// Accuracy returns the fraction of correct answers.
func (r Result) Accuracy() float64 {
	total := r.Correct + r.Wrong
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total)
}

// SummaryScreen displays the end-of-session summary.
type SummaryScreen struct {
	result Result
	again  func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a summary. again builds a fresh drill for "play again"; nil
// hides the option.
func New(result Result, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) Status() layout.Status {
	return layout.Status{
		TotalMastered: s.result.TotalMastered,
		Points:        s.result.Points,
		Goal:          s.result.Plan,
		GoalDone:      s.result.Mastered,
	}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.again != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r":
		if s.again != nil {
			next := s.again()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	headline := "Session complete!"
	if r.WordCount == 0 {
		headline = "Nothing to practise"
	}
	b.WriteString(layout.Center(theme.Title.Render(headline), width))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(layout.Center(theme.Dimmed.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Words: %d      Answers: %d      Accuracy: %.0f%%",
		r.WordCount, r.Correct+r.Wrong, r.Accuracy()*100)
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n")

	mastered := fmt.Sprintf("Mastered this session: %d      All time: %d      Points: %d",
		r.Mastered, r.TotalMastered, r.Points)
	b.WriteString(layout.Center(theme.Body.Render(mastered), width))
	b.WriteString("\n\n")

	if r.Plan > 0 {
		goal := fmt.Sprintf("Daily goal %d/%d", min(r.Mastered, r.Plan), r.Plan)
		style := theme.Dimmed
		if r.GoalReached {
			goal += "  reached!"
			style = theme.Correct
		}
		b.WriteString(layout.Center(style.Render(goal), width))
		b.WriteString("\n\n")
	}

	if len(r.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 50), 0)))
		b.WriteString(layout.Center(theme.Dimmed.Render("Needed another look"), width))
		b.WriteString("\n")
		b.WriteString(layout.Center(divider, width))
		b.WriteString("\n")
		b.WriteString(layout.Center(theme.Incorrect.Render(strings.Join(r.Missed, "  ·  ")), width))
		b.WriteString("\n")
	}

	return b.String()
}
