package quiz

import (
	"time"

	"github.com/XSaadiX/Quiz-app/internal/question"
)

// ExportedQuestion is a full-fidelity question record, correct answer
// included. Filter before showing it to learners.
type ExportedQuestion struct {
	ID             int           `json:"id"`
	Text           string        `json:"text"`
	Options        []string      `json:"options"`
	CorrectAnswer  string        `json:"correctAnswer"`
	Type           question.Kind `json:"type"`
	Category       string        `json:"category,omitempty"`
	SelectedAnswer *string       `json:"selectedAnswer"`
}

// ExportConfig is the serialized form of Config.
type ExportConfig struct {
	Title            string  `json:"title,omitempty"`
	PassThreshold    float64 `json:"passThreshold"`
	TimeLimitSeconds int64   `json:"timeLimitSeconds"`
	StorageKey       string  `json:"storageKey"`
}

// Snapshot is the exportable dump of a quiz.
type Snapshot struct {
	SessionID  string             `json:"sessionId"`
	Questions  []ExportedQuestion `json:"questions"`
	Config     ExportConfig       `json:"config"`
	Statistics Statistics         `json:"statistics"`
	ExportedAt time.Time          `json:"exportedAt"`
}

// Export captures the quiz, including correct answers.
func (q *Quiz) Export() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	qs := make([]ExportedQuestion, 0, len(q.questions))
	for _, qq := range q.questions {
		eq := ExportedQuestion{
			ID:            qq.ID(),
			Text:          qq.Text(),
			Options:       qq.Options(),
			CorrectAnswer: qq.CorrectAnswer(),
			Type:          qq.Kind(),
			Category:      qq.Category(),
		}
		if sel, ok := qq.Selected(); ok {
			eq.SelectedAnswer = &sel
		}
		qs = append(qs, eq)
	}

	return Snapshot{
		SessionID: q.sessionID,
		Questions: qs,
		Config: ExportConfig{
			Title:            q.cfg.Title,
			PassThreshold:    q.cfg.PassThreshold,
			TimeLimitSeconds: int64(q.cfg.TimeLimit / time.Second),
			StorageKey:       q.cfg.StorageKey,
		},
		Statistics: q.statistics(),
		ExportedAt: q.now(),
	}
}
