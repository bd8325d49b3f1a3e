package quiz

import (
	"time"

	"github.com/XSaadiX/Quiz-app/internal/question"
)

// Result is the immutable scoring summary of a submission.
type Result struct {
	Score        int              `json:"score"`
	Total        int              `json:"total"`
	Percentage   int              `json:"percentage"`
	Passed       bool             `json:"passed"`
	PassingScore int              `json:"passingScore"`
	Duration     int64            `json:"duration"` // seconds
	Attempts     int              `json:"attempts"`
	CompletedAt  time.Time        `json:"completedAt"`
	Questions    []QuestionResult `json:"questions"`
}

// QuestionResult is the per-question breakdown of a Result.
type QuestionResult struct {
	ID             int           `json:"id"`
	Text           string        `json:"text"`
	Type           question.Kind `json:"type"`
	Category       string        `json:"category,omitempty"`
	SelectedAnswer string        `json:"selectedAnswer"`
	CorrectAnswer  string        `json:"correctAnswer"`
	Correct        bool          `json:"correct"`
}

// Missed returns the questions answered incorrectly.
func (r *Result) Missed() []QuestionResult {
	var out []QuestionResult
	for _, qr := range r.Questions {
		if !qr.Correct {
			out = append(out, qr)
		}
	}
	return out
}

// result builds a Result from the submitted state. Callers hold mu.
func (q *Quiz) result() *Result {
	total := len(q.questions)
	res := &Result{
		Score:        q.score,
		Total:        total,
		Percentage:   Percentage(q.score, total),
		Passed:       Passed(q.score, total, q.cfg.PassThreshold),
		PassingScore: PassingScore(total, q.cfg.PassThreshold),
		Duration:     roundSeconds(q.elapsed().Seconds()),
		Attempts:     q.attempts,
		Questions:    make([]QuestionResult, 0, total),
	}
	if q.endTime != nil {
		res.CompletedAt = *q.endTime
	}
	for _, qq := range q.questions {
		sel, _ := qq.Selected()
		res.Questions = append(res.Questions, QuestionResult{
			ID:             qq.ID(),
			Text:           qq.Text(),
			Type:           qq.Kind(),
			Category:       qq.Category(),
			SelectedAnswer: sel,
			CorrectAnswer:  qq.CorrectAnswer(),
			Correct:        qq.IsCorrect(),
		})
	}
	return res
}
