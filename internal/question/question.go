package question

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the answer shape of a Question.
type Kind string

const (
	// KindMultipleChoice offers between MinOptions and MaxOptions choices.
	KindMultipleChoice Kind = "multiple-choice"

	// KindTrueFalse offers exactly the options "True" and "False".
	KindTrueFalse Kind = "true-false"
)

// AllKinds returns every supported kind in display order.
func AllKinds() []Kind {
	return []Kind{KindMultipleChoice, KindTrueFalse}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple choice"
	case KindTrueFalse:
		return "True / False"
	default:
		return string(k)
	}
}

// Binary option literals. These are the wire values learners answer with.
const (
	True  = "True"
	False = "False"
)

// Option count bounds for multiple-choice questions.
const (
	MinOptions = 2
	MaxOptions = 6
)

// Question is a single prompt with a fixed answer set, one correct answer,
// and the learner's current selection.
type Question struct {
	id       int
	text     string
	kind     Kind
	options  []string
	correct  string
	category string

	// selected is nil while the question is unanswered.
	selected *string
}

// Option configures optional Question metadata at construction time.
type Option func(*Question)

// InCategory tags the question with a catalog category.
func InCategory(category string) Option {
	return func(q *Question) { q.category = strings.TrimSpace(category) }
}

// New builds a question of the given kind. For KindTrueFalse the options
// argument may be nil; if present it must be exactly ["True", "False"].
func New(kind Kind, id int, text string, options []string, correct string, opts ...Option) (*Question, error) {
	switch kind {
	case KindMultipleChoice:
		return NewMultipleChoice(id, text, options, correct, opts...)
	case KindTrueFalse:
		if options != nil && !slices.Equal(options, binaryOptions()) {
			return nil, &ConfigError{ID: id, Field: "options", Reason: `true-false options must be exactly ["True", "False"]`}
		}
		return NewTrueFalse(id, text, correct, opts...)
	default:
		return nil, &ConfigError{ID: id, Field: "type", Reason: fmt.Sprintf("unknown question type %q", kind)}
	}
}

// NewMultipleChoice builds a selectable-options question with 2 to 6 choices.
func NewMultipleChoice(id int, text string, options []string, correct string, opts ...Option) (*Question, error) {
	if options != nil && (len(options) < MinOptions || len(options) > MaxOptions) {
		return nil, &ConfigError{
			ID:     id,
			Field:  "options",
			Reason: fmt.Sprintf("multiple choice needs %d to %d options, got %d", MinOptions, MaxOptions, len(options)),
		}
	}
	return build(KindMultipleChoice, id, text, options, correct, opts)
}

// NewTrueFalse builds a binary question. correct must be the literal
// string "True" or "False".
func NewTrueFalse(id int, text string, correct string, opts ...Option) (*Question, error) {
	if correct != True && correct != False {
		return nil, &ConfigError{
			ID:     id,
			Field:  "correctAnswer",
			Reason: fmt.Sprintf("true-false answer must be %q or %q, got %q", True, False, correct),
		}
	}
	return build(KindTrueFalse, id, text, binaryOptions(), correct, opts)
}

// NewTrueFalseBool is NewTrueFalse with a boolean correct answer.
func NewTrueFalseBool(id int, text string, correct bool, opts ...Option) (*Question, error) {
	return NewTrueFalse(id, text, boolString(correct), opts...)
}

func build(kind Kind, id int, text string, options []string, correct string, opts []Option) (*Question, error) {
	if err := validate(id, text, options, correct); err != nil {
		return nil, err
	}
	q := &Question{
		id:      id,
		text:    text,
		kind:    kind,
		options: slices.Clone(options),
		correct: correct,
	}
	for _, o := range opts {
		o(q)
	}
	return q, nil
}

// validate enforces the rules shared by every kind.
func validate(id int, text string, options []string, correct string) error {
	if id <= 0 {
		return &ConfigError{ID: id, Field: "id", Reason: "must be a positive integer"}
	}
	if strings.TrimSpace(text) == "" {
		return &ConfigError{ID: id, Field: "text", Reason: "must not be empty"}
	}
	if options == nil {
		return &ConfigError{ID: id, Field: "options", Reason: "must be provided"}
	}
	if len(options) < MinOptions {
		return &ConfigError{ID: id, Field: "options", Reason: fmt.Sprintf("need at least %d options, got %d", MinOptions, len(options))}
	}
	seen := make(map[string]bool, len(options))
	for i, o := range options {
		if strings.TrimSpace(o) == "" {
			return &ConfigError{ID: id, Field: "options", Reason: fmt.Sprintf("option %d is empty", i+1)}
		}
		if seen[o] {
			return &ConfigError{ID: id, Field: "options", Reason: fmt.Sprintf("duplicate option %q", o)}
		}
		seen[o] = true
	}
	if correct == "" {
		return &ConfigError{ID: id, Field: "correctAnswer", Reason: "must not be empty"}
	}
	if !seen[correct] {
		return &ConfigError{ID: id, Field: "correctAnswer", Reason: fmt.Sprintf("%q is not one of the options", correct)}
	}
	return nil
}

func (q *Question) ID() int          { return q.id }
func (q *Question) Text() string     { return q.text }
func (q *Question) Kind() Kind       { return q.kind }
func (q *Question) Category() string { return q.category }

// Options returns a copy of the allowed answers in presentation order.
func (q *Question) Options() []string { return slices.Clone(q.options) }

// CorrectAnswer returns the correct option.
func (q *Question) CorrectAnswer() string { return q.correct }

// HasOption reports whether value is one of the allowed answers.
func (q *Question) HasOption(value string) bool {
	return slices.Contains(q.options, value)
}

// Selected returns the current selection and whether one exists.
func (q *Question) Selected() (string, bool) {
	if q.selected == nil {
		return "", false
	}
	return *q.selected, true
}

// IsAnswered reports whether the learner has selected an option.
func (q *Question) IsAnswered() bool { return q.selected != nil }

// SetAnswer replaces the current selection. Re-answering is always allowed
// here; locking answers after submission is the quiz's job.
func (q *Question) SetAnswer(value string) error {
	if !q.HasOption(value) {
		return &AnswerError{ID: q.id, Value: value}
	}
	v := value
	q.selected = &v
	return nil
}

// ResetAnswer clears the selection.
func (q *Question) ResetAnswer() {
	q.selected = nil
}

// IsCorrect reports whether the current selection matches the correct
// answer. An unanswered question is never correct.
func (q *Question) IsCorrect() bool {
	return q.selected != nil && *q.selected == q.correct
}

// SetBoolAnswer answers a true-false question with a boolean.
func (q *Question) SetBoolAnswer(value bool) error {
	if q.kind != KindTrueFalse {
		return &AnswerError{ID: q.id, Value: boolString(value)}
	}
	return q.SetAnswer(boolString(value))
}

// BoolAnswer returns the selection of a true-false question as a boolean.
// ok is false when the question is unanswered or not true-false.
func (q *Question) BoolAnswer() (value bool, ok bool) {
	if q.kind != KindTrueFalse || q.selected == nil {
		return false, false
	}
	return *q.selected == True, true
}

// CorrectBool returns the correct answer of a true-false question as a
// boolean. ok is false for other kinds.
func (q *Question) CorrectBool() (value bool, ok bool) {
	if q.kind != KindTrueFalse {
		return false, false
	}
	return q.correct == True, true
}

// View is a read-only copy of a question for presentation layers. It never
// carries the correct answer.
type View struct {
	ID       int
	Text     string
	Kind     Kind
	Category string
	Options  []string
	Selected string
	Answered bool
}

// View returns a detached read snapshot of q.
func (q *Question) View() View {
	v := View{
		ID:       q.id,
		Text:     q.text,
		Kind:     q.kind,
		Category: q.category,
		Options:  q.Options(),
	}
	v.Selected, v.Answered = q.Selected()
	return v
}

func binaryOptions() []string { return []string{True, False} }

func boolString(b bool) string {
	if b {
		return True
	}
	return False
}
