package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/XSaadiX/Quiz-app/internal/ui/layout"
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

// StatusProvider is an optional interface for screens that show a status
// on the right of the header.
type StatusProvider interface {
	Status() string
}

// Resumer is implemented by screens that refresh themselves when they
// become active again after the screens above them are popped.
type Resumer interface {
	Resume() tea.Cmd
}

// TickMsg is delivered to the active screen once per second so timers
// stay current.
type TickMsg time.Time

// Tick schedules the next TickMsg.
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}
