package home

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	core "github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/goal"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	drillscreen "github.com/abhisek/wordiz/internal/screens/drill"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

const (
	itemStart = iota
	itemPlan
	itemHistory
	itemQuit
)

// HomeScreen is the main menu. It starts drills and picks the daily plan.
type HomeScreen struct {
	deps          drillscreen.Deps
	sessions      history.SessionSource
	plan          int
	menu          components.Menu
	masteredCount int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. An invalid plan falls back to goal.DefaultPlan.
// A nil sessions source disables the history entry.
func New(deps drillscreen.Deps, plan int, sessions history.SessionSource) *HomeScreen {
	if !goal.ValidPlan(plan) {
		plan = goal.DefaultPlan
	}
	h := &HomeScreen{deps: deps, sessions: sessions, plan: plan}
	h.menu = components.NewMenu(h.menuItems())
	h.loadMastered()
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	tooFew := len(h.deps.Words) < core.MinPoolSize
	return []components.MenuItem{
		itemStart: {
			Label:    "START DRILL",
			Hint:     fmt.Sprintf("goal: %d words", h.plan),
			Disabled: tooFew,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: drillscreen.New(h.deps, h.plan)}
				}
			},
		},
		itemPlan: {
			Label: fmt.Sprintf("DAILY PLAN  ◂ %d ▸", h.plan),
			Hint:  "←/→ to change",
		},
		itemHistory: {
			Label:    "HISTORY",
			Disabled: h.sessions == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.sessions)}
				}
			},
		},
		itemQuit: {
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
}

// cyclePlan moves to the next (dir > 0) or previous plan size, wrapping.
func (h *HomeScreen) cyclePlan(dir int) {
	i := slices.Index(goal.PlanSizes, h.plan)
	n := len(goal.PlanSizes)
	h.plan = goal.PlanSizes[((i+dir)%n+n)%n]

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	h.menu.Selected = selected
}

func (h *HomeScreen) loadMastered() {
	if h.deps.Counter == nil {
		return
	}
	n, err := h.deps.Counter.Load(context.Background(), core.TotalMasteredKey)
	if err != nil {
		if h.deps.Logger != nil {
			h.deps.Logger.Warn("load mastered total", "error", err)
		}
		return
	}
	h.masteredCount = n
}

// Plan returns the currently selected daily plan.
func (h *HomeScreen) Plan() int { return h.plan }

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads the mastered total after a drill is popped.
func (h *HomeScreen) Resume() tea.Cmd {
	h.loadMastered()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && h.menu.Selected == itemPlan {
		switch kmsg.String() {
		case "left", "h":
			h.cyclePlan(-1)
			return h, nil
		case "right", "l", "enter":
			h.cyclePlan(1)
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height+layout.HeaderHeight+layout.FooterHeight < 30 || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.masteredCount, len(h.deps.Words), cw, compact),
		renderBlock(h.menu.View(), cw),
	}
	if len(h.deps.Words) < core.MinPoolSize {
		sections = append(sections, renderWarning(
			fmt.Sprintf("The word list needs at least %d words to drill", core.MinPoolSize), cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() layout.Status {
	return layout.Status{TotalMastered: h.masteredCount}
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Plan"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
