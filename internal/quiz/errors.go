package quiz

import "errors"

var (
	// ErrQuestionNotFound is returned for an id that is not in the quiz.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrIncompleteQuiz is returned by Submit while questions are unanswered.
	ErrIncompleteQuiz = errors.New("quiz has unanswered questions")

	// ErrAlreadySubmitted is returned by Submit after a successful submission.
	ErrAlreadySubmitted = errors.New("quiz already submitted")

	// ErrQuizAlreadyCompleted is returned for mutations attempted after
	// submission. ResetAllAnswers lifts the lock.
	ErrQuizAlreadyCompleted = errors.New("quiz already completed")
)
