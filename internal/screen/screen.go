package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that own live session numbers
// for the header. Other screens show the app's stored totals.
type StatusProvider interface {
	Status() layout.Status
}

// EscapeHandler is implemented by screens that handle Esc themselves,
// for example to confirm before leaving. The app then forwards Esc
// instead of popping the screen.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Abandoner is implemented by screens holding unsaved work. The app calls
// Abandon before quitting so the screen can record what it has.
type Abandoner interface {
	Abandon()
}

// Resumer is implemented by screens that refresh when they become active
// again after the screens above them are popped.
type Resumer interface {
	Resume() tea.Cmd
}
