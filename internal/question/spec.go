package question

import "fmt"

// Spec is the catalog representation of a question, as supplied by an
// external question source.
type Spec struct {
	ID            int      `json:"id"`
	Type          Kind     `json:"type"`
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Category      string   `json:"category,omitempty"`
}

// FromSpec turns a catalog entry into a validated Question.
func FromSpec(s Spec) (*Question, error) {
	return New(s.Type, s.ID, s.Text, s.Options, s.CorrectAnswer, InCategory(s.Category))
}

// FromSpecs builds every entry in order and stops at the first malformed one.
func FromSpecs(specs []Spec) ([]*Question, error) {
	questions := make([]*Question, 0, len(specs))
	for i, s := range specs {
		q, err := FromSpec(s)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ToSpec converts q back to its catalog representation.
func (q *Question) ToSpec() Spec {
	return Spec{
		ID:            q.id,
		Type:          q.kind,
		Text:          q.text,
		Options:       q.Options(),
		CorrectAnswer: q.correct,
		Category:      q.category,
	}
}
