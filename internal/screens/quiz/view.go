package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/XSaadiX/Quiz-app/internal/question"
	"github.com/XSaadiX/Quiz-app/internal/ui/components"
	"github.com/XSaadiX/Quiz-app/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	v, ok := s.current()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  This quiz has no questions.")
	}

	var b strings.Builder

	// Position and kind line.
	info := fmt.Sprintf("Question %d of %d  ·  %s", s.index+1, s.quiz.Total(), v.Kind.DisplayName())
	if v.Category != "" {
		info += "  ·  " + v.Category
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + info))
	b.WriteString("\n\n")

	// Progress bar.
	bar := components.NewProgressBar("Progress", s.quiz.Progress(), min(width-4, 60))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	// Question card.
	cardWidth := max(min(width-4, 76), 20)
	text := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cardWidth - 6).Render(v.Text)
	b.WriteString(theme.Card.Width(cardWidth).Render(text))
	b.WriteString("\n\n")

	// Options, re-synced with the quiz in case answers were reset elsewhere.
	choice := s.choice
	choice.SetChosen(v.Selected)
	choice.Locked = s.quiz.Completed()
	for _, line := range strings.Split(strings.TrimRight(choice.View(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	// Question map.
	b.WriteString("  " + s.renderDots(s.quiz.Questions()))
	b.WriteString("\n\n")

	// Submit button and notice.
	ready := s.quiz.AreAllQuestionsAnswered() && !s.quiz.Completed()
	b.WriteString("  " + components.NewButton("Submit (s)", ready).View())
	if s.notice != "" {
		b.WriteString("   " + theme.Warning.Render(s.notice))
	}
	if s.quiz.TimeExpired() {
		b.WriteString("\n\n  " + theme.Warning.Render("Time is up. You can still submit your answers."))
	}

	return b.String()
}

// renderDots draws one marker per question: filled when answered, with the
// current question highlighted.
func (s *QuizScreen) renderDots(views []question.View) string {
	var b strings.Builder
	for i, v := range views {
		mark := "○"
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if v.Answered {
			mark = "●"
			style = theme.Answered
		}
		if i == s.index {
			style = theme.Selected
		}
		b.WriteString(style.Render(mark))
		b.WriteString(" ")
	}
	return b.String()
}
