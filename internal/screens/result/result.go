package result

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/XSaadiX/Quiz-app/internal/question"
	qz "github.com/XSaadiX/Quiz-app/internal/quiz"
	"github.com/XSaadiX/Quiz-app/internal/router"
	"github.com/XSaadiX/Quiz-app/internal/screen"
	"github.com/XSaadiX/Quiz-app/internal/ui/components"
	"github.com/XSaadiX/Quiz-app/internal/ui/layout"
	"github.com/XSaadiX/Quiz-app/internal/ui/theme"
)

// ResultScreen shows the outcome of a submission and a per-question review.
type ResultScreen struct {
	quiz   *qz.Quiz
	result *qz.Result
	retake func() screen.Screen
	offset int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. retake builds the screen shown after the
// answers are reset; nil disables retaking.
func New(q *qz.Quiz, res *qz.Result, retake func() screen.Screen) *ResultScreen {
	return &ResultScreen{quiz: q, result: res, retake: retake}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	retake := components.KeyRetake
	retake.SetEnabled(s.retake != nil)
	return components.Hints(retake, components.KeyUp, components.KeyDown, components.KeyBack)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, components.KeyRetake):
		if s.retake == nil {
			return s, nil
		}
		s.quiz.ResetAllAnswers()
		next := s.retake()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case key.Matches(kmsg, components.KeyUp):
		if s.offset > 0 {
			s.offset--
		}
	case key.Matches(kmsg, components.KeyDown):
		if s.offset < len(s.reviewLines())-1 {
			s.offset++
		}
	case key.Matches(kmsg, components.KeyBack, components.KeySelect):
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	headline := "Not passed"
	if res.Passed {
		headline = "Passed!"
	}
	verdict := center(theme.Verdict(res.Passed), headline)
	b.WriteString("\n" + verdict + "\n\n")

	b.WriteString(center(theme.Body,
		fmt.Sprintf("Score: %d/%d (%d%%)", res.Score, res.Total, res.Percentage)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Needed %d to pass    Time %s    Attempt %d",
			res.PassingScore, layout.FormatClock(time.Duration(res.Duration)*time.Second), res.Attempts)))
	b.WriteString("\n")

	stats := s.quiz.Statistics()
	var kinds []string
	for _, k := range question.AllKinds() {
		t := stats.ByKind[k]
		if t.Total == 0 {
			continue
		}
		kinds = append(kinds, fmt.Sprintf("%s %d/%d", k.DisplayName(), t.Correct, t.Total))
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), strings.Join(kinds, "    ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	lines := s.reviewLines()
	visible := max(height-layout.SummaryHeight, 1)
	start := min(s.offset, max(len(lines)-1, 0))
	end := min(start+visible, len(lines))
	for _, line := range lines[start:end] {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}

// reviewLines renders one or two lines per question.
func (s *ResultScreen) reviewLines() []string {
	var lines []string
	for i, qr := range s.result.Questions {
		if qr.Correct {
			lines = append(lines, theme.Correct.Render("✓ ")+
				theme.Body.Render(fmt.Sprintf("%d. %s", i+1, qr.Text)))
			continue
		}
		lines = append(lines, theme.Incorrect.Render("✗ ")+
			theme.Body.Render(fmt.Sprintf("%d. %s", i+1, qr.Text)))
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("     your answer: %s    correct: %s",
			qr.SelectedAnswer, qr.CorrectAnswer)))
	}
	return lines
}
