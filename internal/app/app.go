package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	qz "github.com/XSaadiX/Quiz-app/internal/quiz"
	"github.com/XSaadiX/Quiz-app/internal/router"
	"github.com/XSaadiX/Quiz-app/internal/screen"
	"github.com/XSaadiX/Quiz-app/internal/screens/home"
	"github.com/XSaadiX/Quiz-app/internal/ui/components"
	"github.com/XSaadiX/Quiz-app/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(q *qz.Quiz) AppModel {
	return AppModel{
		router: router.New(home.New(q)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return screen.Tick()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.TickMsg:
		return m, tea.Batch(screen.Tick(), m.router.Update(msg))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := components.Hints(components.KeyUp, components.KeyDown, components.KeySelect)
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program for q and blocks until the user quits.
func Run(q *qz.Quiz, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := tea.NewProgram(newAppModel(q))
	if _, err := p.Run(); err != nil {
		logger.Error("tui stopped", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("tui closed",
		zap.Stringer("phase", q.Phase()),
		zap.Int("answered", q.AnsweredCount()),
		zap.Int("total", q.Total()))
	return nil
}
