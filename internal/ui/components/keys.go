package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/XSaadiX/Quiz-app/internal/ui/layout"
)

// Key bindings shared by the screens.
var (
	KeyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up"))
	KeyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down"))
	KeyPrev   = key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "Prev"))
	KeyNext   = key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "Next"))
	KeySelect = key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Select"))
	KeyPick   = key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "Pick"))
	KeyClear  = key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "Clear"))
	KeySubmit = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Submit"))
	KeyRetake = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Retake"))
	KeyBack   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
)

// Hints converts enabled bindings into footer hints.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
