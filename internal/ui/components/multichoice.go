package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/XSaadiX/Quiz-app/internal/ui/theme"
)

// ChoiceMsg reports that the learner picked an option.
type ChoiceMsg struct {
	Value string
}

// MultiChoice is an option picker. It only records the cursor; the chosen
// option is owned by the caller and set with SetChosen.
type MultiChoice struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
	Locked  bool
}

// NewMultiChoice creates a picker over options with selected pre-chosen.
func NewMultiChoice(options []string, selected string) MultiChoice {
	m := MultiChoice{Options: options, Chosen: -1}
	m.SetChosen(selected)
	if m.Chosen >= 0 {
		m.Cursor = m.Chosen
	}
	return m
}

// SetChosen marks value as chosen, or clears the mark if value is not an
// option.
func (m *MultiChoice) SetChosen(value string) {
	m.Chosen = -1
	for i, o := range m.Options {
		if o == value {
			m.Chosen = i
			return
		}
	}
}

// Update moves the cursor and emits a ChoiceMsg on selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, KeyUp):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(kmsg, KeyDown):
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case key.Matches(kmsg, KeySelect):
		return m, m.choose(m.Cursor)
	case key.Matches(kmsg, KeyPick):
		n, err := strconv.Atoi(kmsg.String())
		if err == nil && n >= 1 && n <= len(m.Options) {
			m.Cursor = n - 1
			return m, m.choose(n - 1)
		}
	}

	return m, nil
}

func (m MultiChoice) choose(i int) tea.Cmd {
	value := m.Options[i]
	return func() tea.Msg { return ChoiceMsg{Value: value} }
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}
		mark := "( )"
		if i == m.Chosen {
			mark = "(•)"
		}

		line := fmt.Sprintf("%s%d. %s %s", prefix, i+1, mark, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == m.Cursor && !m.Locked:
			style = theme.Selected
		case i == m.Chosen:
			style = theme.Answered
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
