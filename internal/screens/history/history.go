package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// queryLimit bounds how many session events are read. Each finished
// session has a start and an end event.
const queryLimit = 100

// SessionSource is the part of store.EventRepo the history screen reads.
type SessionSource interface {
	QuerySessionEvents(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error)
}

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

// HistoryScreen lists finished drill sessions, newest first.
type HistoryScreen struct {
	source   SessionSource
	sessions []store.SessionEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source SessionSource) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.source.QuerySessionEvents(context.Background(), store.QueryOpts{Limit: queryLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		var ended []store.SessionEvent
		for _, e := range events {
			if e.Action == store.SessionEnd {
				ended = append(ended, e)
			}
		}
		return historyLoadedMsg{Sessions: ended}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	message := func(c lipgloss.Style, text string) string {
		return c.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
	}
	switch {
	case s.errMsg != "":
		return message(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	case !s.loaded:
		return message(theme.Hint, "Loading history...")
	case len(s.sessions) == 0:
		return message(theme.Hint.Italic(true), "No sessions yet. Start a drill!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Center(style.Render(prefix+sessionLine(sess)), width))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range sessionDetails(sess) {
				b.WriteString(layout.Center(theme.Hint.Render("    "+d), width))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func sessionLine(e store.SessionEvent) string {
	answers := e.CorrectAnswers + e.WrongAnswers
	var accuracy float64
	if answers > 0 {
		accuracy = float64(e.CorrectAnswers) / float64(answers) * 100
	}
	goal := ""
	if e.GoalReached {
		goal = "  ◎"
	}
	return fmt.Sprintf("%s  %d:%02d  %d/%d mastered  %.0f%% accuracy%s",
		e.Timestamp.Local().Format("Jan 02, 2006"),
		e.DurationSecs/60, e.DurationSecs%60,
		e.Mastered, e.WordCount, accuracy, goal)
}

func sessionDetails(e store.SessionEvent) []string {
	goal := "not reached"
	if e.GoalReached {
		goal = "reached"
	}
	return []string{
		fmt.Sprintf("Answers: %d correct, %d wrong", e.CorrectAnswers, e.WrongAnswers),
		fmt.Sprintf("Daily plan: %d words, %s", e.Plan, goal),
		fmt.Sprintf("Points: %d", e.Points),
	}
}
