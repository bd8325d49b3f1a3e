package quiz

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/XSaadiX/Quiz-app/internal/question"
	qz "github.com/XSaadiX/Quiz-app/internal/quiz"
	"github.com/XSaadiX/Quiz-app/internal/router"
	"github.com/XSaadiX/Quiz-app/internal/screen"
	"github.com/XSaadiX/Quiz-app/internal/screens/result"
	"github.com/XSaadiX/Quiz-app/internal/ui/components"
	"github.com/XSaadiX/Quiz-app/internal/ui/layout"
)

// QuizScreen presents one question at a time and forwards answers to the
// quiz. It holds no answer state of its own.
type QuizScreen struct {
	quiz   *qz.Quiz
	index  int
	choice components.MultiChoice
	notice string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen positioned on the first unanswered question.
func New(q *qz.Quiz) *QuizScreen {
	s := &QuizScreen{quiz: q}
	s.index = s.firstUnanswered()
	s.load()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	if t := s.quiz.Config().Title; t != "" {
		return t
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	submit := components.KeySubmit
	submit.SetEnabled(s.quiz.AreAllQuestionsAnswered())
	return components.Hints(components.KeyUp, components.KeyDown, components.KeySelect,
		components.KeyPrev, components.KeyNext, submit, components.KeyBack)
}

// Status shows answered count and the clock.
func (s *QuizScreen) Status() string {
	status := fmt.Sprintf("%d/%d answered", s.quiz.AnsweredCount(), s.quiz.Total())
	if rem, ok := s.quiz.Remaining(); ok {
		return status + "   " + layout.FormatClock(rem) + " left"
	}
	return status + "   " + layout.FormatClock(s.quiz.Elapsed())
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.TickMsg:
		return s, nil

	case components.ChoiceMsg:
		v, ok := s.current()
		if !ok {
			return s, nil
		}
		if err := s.quiz.SetAnswer(v.ID, msg.Value); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		s.choice.SetChosen(msg.Value)
		s.notice = ""
		if s.quiz.AreAllQuestionsAnswered() {
			s.notice = "All questions answered. Press s to submit."
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, components.KeyBack):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, components.KeyPrev):
			s.move(-1)
			return s, nil
		case key.Matches(msg, components.KeyNext):
			s.move(1)
			return s, nil
		case key.Matches(msg, components.KeyClear):
			if v, ok := s.current(); ok {
				if err := s.quiz.ClearAnswer(v.ID); err != nil {
					s.notice = err.Error()
				} else {
					s.choice.SetChosen("")
				}
			}
			return s, nil
		case key.Matches(msg, components.KeySubmit):
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

// submit scores the quiz and swaps this screen for the result. An
// incomplete quiz jumps to the first unanswered question instead.
func (s *QuizScreen) submit() tea.Cmd {
	res, err := s.quiz.Submit()
	switch {
	case errors.Is(err, qz.ErrIncompleteQuiz):
		left := s.quiz.Total() - s.quiz.AnsweredCount()
		s.notice = fmt.Sprintf("%d question(s) still unanswered.", left)
		s.index = s.firstUnanswered()
		s.load()
		return nil
	case errors.Is(err, qz.ErrAlreadySubmitted):
		res, _ = s.quiz.Result()
	case err != nil:
		s.notice = err.Error()
		return nil
	}

	q := s.quiz
	next := result.New(q, res, func() screen.Screen { return New(q) })
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) move(delta int) {
	total := s.quiz.Total()
	if total == 0 {
		return
	}
	s.index = min(max(s.index+delta, 0), total-1)
	s.notice = ""
	s.load()
}

// load rebuilds the picker for the current question.
func (s *QuizScreen) load() {
	v, ok := s.current()
	if !ok {
		s.choice = components.MultiChoice{Chosen: -1}
		return
	}
	s.choice = components.NewMultiChoice(v.Options, v.Selected)
	s.choice.Locked = s.quiz.Completed()
}

func (s *QuizScreen) current() (question.View, bool) {
	views := s.quiz.Questions()
	if len(views) == 0 {
		return question.View{}, false
	}
	s.index = min(max(s.index, 0), len(views)-1)
	return views[s.index], true
}

func (s *QuizScreen) firstUnanswered() int {
	for i, v := range s.quiz.Questions() {
		if !v.Answered {
			return i
		}
	}
	return 0
}
