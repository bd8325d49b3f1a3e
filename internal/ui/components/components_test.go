package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NavigateAndSelect(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"}, "")
	assert.Equal(t, -1, m.Chosen)

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 2, m.Cursor, "cursor stops at the last option")

	m, cmd := m.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Value: "c"}, cmd())
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"}, "")

	m, cmd := m.Update(runeKey('2'))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Value: "b"}, cmd())
	assert.Equal(t, 1, m.Cursor)

	_, cmd = m.Update(runeKey('5'))
	assert.Nil(t, cmd, "out of range pick is ignored")
}

func TestMultiChoice_PreselectedAndLocked(t *testing.T) {
	m := NewMultiChoice([]string{"True", "False"}, "False")
	assert.Equal(t, 1, m.Chosen)
	assert.Equal(t, 1, m.Cursor)
	assert.Contains(t, m.View(), "(•) False")

	m.Locked = true
	_, cmd := m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)

	m.SetChosen("nope")
	assert.Equal(t, -1, m.Chosen)
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Hidden", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Off", Disabled: true},
		{Label: "Quit", Action: func() tea.Cmd { called = "quit"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	_, _ = m.Update(press(tea.KeyEnter))
	assert.Equal(t, "start", called)
	assert.True(t, strings.Contains(m.View(), "▸ Start"))
}

func TestMenu_Shortcut(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Start", Shortcut: "s", Action: func() tea.Cmd { called = "start"; return nil }},
		{Label: "Reset", Shortcut: "r", Disabled: true, Action: func() tea.Cmd { called = "reset"; return nil }},
		{Label: "Quit", Shortcut: "q", Action: func() tea.Cmd { called = "quit"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	assert.Equal(t, "", called, "disabled shortcut must not fire")

	m, _ = m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Equal(t, "quit", called)
	assert.Equal(t, 2, m.Selected)
}

func TestProgressBar_Clamps(t *testing.T) {
	assert.Contains(t, NewProgressBar("", 140, 40).View(), "100%")
	assert.Contains(t, NewProgressBar("Done", 33, 40).View(), "33%")
}

func TestHints_SkipsDisabled(t *testing.T) {
	off := KeyRetake
	off.SetEnabled(false)
	hints := Hints(KeySubmit, off, KeyBack)
	require.Len(t, hints, 2)
	assert.Equal(t, "s", hints[0].Key)
	assert.Equal(t, "Esc", hints[1].Key)
}
