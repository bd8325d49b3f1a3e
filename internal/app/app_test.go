package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XSaadiX/Quiz-app/internal/catalog"
	qz "github.com/XSaadiX/Quiz-app/internal/quiz"
)

func seedQuiz(t *testing.T) *qz.Quiz {
	t.Helper()
	qs, err := catalog.Seed().Build()
	require.NoError(t, err)
	q, err := qz.New(qs, qz.WithTitle("General Knowledge"))
	require.NoError(t, err)
	return q
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(seedQuiz(t))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestAppModel_ViewRendersFrame(t *testing.T) {
	var model tea.Model = newAppModel(seedQuiz(t))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, model.View().AltScreen)
	content := model.(AppModel).render()
	assert.True(t, strings.Contains(content, "Home"), "header shows the active screen title")
	assert.Contains(t, content, "Start quiz")
	assert.Contains(t, content, "Ctrl+C")
}

func TestAppModel_TooSmall(t *testing.T) {
	var model tea.Model = newAppModel(seedQuiz(t))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, model.(AppModel).render(), "Terminal too small")
}
