package question

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a Question cannot be built
	// from the supplied fields. It is never recovered from.
	ErrInvalidConfiguration = errors.New("invalid question configuration")

	// ErrInvalidAnswer is returned when an answer is not one of the
	// question's options. The previous selection is left untouched.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// ConfigError describes which field of a question definition is malformed.
type ConfigError struct {
	ID     int
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("question %d: invalid %s: %s", e.ID, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// AnswerError reports a rejected answer value.
type AnswerError struct {
	ID    int
	Value string
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("question %d: %q is not an allowed answer", e.ID, e.Value)
}

func (e *AnswerError) Unwrap() error { return ErrInvalidAnswer }
