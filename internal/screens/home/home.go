package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/XSaadiX/Quiz-app/internal/quiz"
	"github.com/XSaadiX/Quiz-app/internal/router"
	"github.com/XSaadiX/Quiz-app/internal/screen"
	quizscreen "github.com/XSaadiX/Quiz-app/internal/screens/quiz"
	"github.com/XSaadiX/Quiz-app/internal/screens/result"
	"github.com/XSaadiX/Quiz-app/internal/ui/components"
	"github.com/XSaadiX/Quiz-app/internal/ui/layout"
	"github.com/XSaadiX/Quiz-app/internal/ui/theme"
)

// Menu rows.
const (
	itemStart = iota
	itemReset
	itemQuit
)

// HomeScreen is the entry screen. Its menu reflects the quiz phase.
type HomeScreen struct {
	quiz   *qz.Quiz
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen for q.
func New(q *qz.Quiz) *HomeScreen {
	h := &HomeScreen{quiz: q}
	h.refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume picks up answers given on the screens above.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return components.Hints(components.KeyUp, components.KeyDown, components.KeySelect)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refresh rebuilds the menu from the current quiz state, keeping the
// selection when it is still enabled.
func (h *HomeScreen) refresh() {
	phase := h.quiz.Phase()

	start := "Start quiz"
	switch phase {
	case qz.PhaseInProgress:
		start = fmt.Sprintf("Resume quiz (%d/%d answered)", h.quiz.AnsweredCount(), h.quiz.Total())
	case qz.PhaseCompleted:
		start = "View result"
	}

	items := []components.MenuItem{
		itemStart: {Label: start, Shortcut: "s", Action: h.open, Disabled: h.quiz.Total() == 0},
		itemReset: {Label: "Reset progress", Shortcut: "r", Action: h.reset, Disabled: phase == qz.PhaseNotStarted},
		itemQuit:  {Label: "Quit", Shortcut: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	prev := h.menu.Selected
	h.menu = components.NewMenu(items)
	if prev >= 0 && prev < len(items) && !items[prev].Disabled {
		h.menu.Selected = prev
	}
}

func (h *HomeScreen) open() tea.Cmd {
	h.notice = ""
	q := h.quiz
	if res, ok := q.Result(); ok {
		next := result.New(q, res, func() screen.Screen { return quizscreen.New(q) })
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	next := quizscreen.New(q)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) reset() tea.Cmd {
	h.quiz.ResetAllAnswers()
	h.notice = "Progress cleared."
	h.refresh()
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var sections []string
	sections = append(sections, center(renderBanner(width, height)))

	title := h.quiz.Config().Title
	if title == "" {
		title = "Quiz"
	}
	sub := fmt.Sprintf("%s  ·  %d questions  ·  pass at %.0f%%",
		title, h.quiz.Total(), h.quiz.Config().PassThreshold*100)
	if limit := h.quiz.Config().TimeLimit; limit > 0 {
		sub += "  ·  " + layout.FormatClock(limit) + " limit"
	}
	if n := h.quiz.Attempts(); n > 0 {
		sub += fmt.Sprintf("  ·  attempts: %d", n)
	}
	sections = append(sections, center(theme.Subtitle.Render(sub)))

	sections = append(sections, center(theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))))

	if h.notice != "" {
		sections = append(sections, center(theme.Hint.Render(h.notice)))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, strings.Join(sections, "\n\n"))
}
