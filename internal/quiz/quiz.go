package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/XSaadiX/Quiz-app/internal/persist"
	"github.com/XSaadiX/Quiz-app/internal/question"
)

const (
	// DefaultPassThreshold is the fraction of correct answers needed to pass.
	DefaultPassThreshold = 0.7

	// DefaultStorageKey is the key in-progress state is saved under.
	DefaultStorageKey = "quiz-progress"
)

// Phase is the coarse lifecycle state of a quiz.
type Phase int

const (
	PhaseNotStarted Phase = iota // No answer given since construction or reset
	PhaseInProgress              // At least one answer given, not submitted
	PhaseCompleted               // Submitted; answers are locked
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return "not-started"
	}
}

// Persistence saves and restores in-progress state. *persist.Adapter
// satisfies it. Implementations must not fail the caller.
type Persistence interface {
	Save(ctx context.Context, key string, st persist.State)
	Load(ctx context.Context, key string) (persist.State, bool)
	Clear(ctx context.Context, key string)
}

// Config holds the fixed settings of a quiz.
type Config struct {
	Title         string
	PassThreshold float64
	TimeLimit     time.Duration // zero means untimed
	StorageKey    string
}

// Quiz owns an ordered set of questions and tracks answering, scoring,
// timing and persistence for one learner session.
//
// All methods are safe for concurrent use; mutations are serialized.
type Quiz struct {
	mu sync.Mutex

	sessionID string
	questions []*question.Question
	cfg       Config
	store     Persistence
	logger    *zap.Logger
	now       func() time.Time

	completed bool
	score     int
	attempts  int
	startTime *time.Time
	endTime   *time.Time
}

// Option configures a Quiz.
type Option func(*Quiz)

// WithPassThreshold sets the pass fraction. It must be in (0, 1].
func WithPassThreshold(threshold float64) Option {
	return func(q *Quiz) { q.cfg.PassThreshold = threshold }
}

// WithTimeLimit sets an advisory time limit used by Remaining and TimeExpired.
func WithTimeLimit(d time.Duration) Option {
	return func(q *Quiz) { q.cfg.TimeLimit = d }
}

// WithTitle sets a display title.
func WithTitle(title string) Option {
	return func(q *Quiz) { q.cfg.Title = title }
}

// WithStorage persists in-progress state through p under key. An empty key
// keeps DefaultStorageKey.
func WithStorage(p Persistence, key string) Option {
	return func(q *Quiz) {
		q.store = p
		if key != "" {
			q.cfg.StorageKey = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(q *Quiz) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Quiz) {
		if now != nil {
			q.now = now
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(q *Quiz) { q.sessionID = id }
}

// New creates a quiz over questions in the given order.
func New(questions []*question.Question, opts ...Option) (*Quiz, error) {
	q := &Quiz{
		sessionID: uuid.NewString(),
		cfg: Config{
			PassThreshold: DefaultPassThreshold,
			StorageKey:    DefaultStorageKey,
		},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(q)
	}

	if !(q.cfg.PassThreshold > 0 && q.cfg.PassThreshold <= 1) {
		return nil, fmt.Errorf("%w: pass threshold must be in (0, 1], got %v",
			question.ErrInvalidConfiguration, q.cfg.PassThreshold)
	}
	if q.cfg.TimeLimit < 0 {
		return nil, fmt.Errorf("%w: time limit must not be negative, got %s",
			question.ErrInvalidConfiguration, q.cfg.TimeLimit)
	}

	q.questions = make([]*question.Question, 0, len(questions))
	for i, qq := range questions {
		if qq == nil {
			return nil, fmt.Errorf("%w: question %d is nil", question.ErrInvalidConfiguration, i+1)
		}
		q.questions = append(q.questions, qq)
	}
	q.logger = q.logger.Named("quiz").With(zap.String("session", q.sessionID))
	return q, nil
}

// SessionID identifies this quiz instance.
func (q *Quiz) SessionID() string { return q.sessionID }

// Config returns the quiz settings.
func (q *Quiz) Config() Config { return q.cfg }

// SetAnswer records answer for the question with id. The first successful
// answer starts the clock. State is persisted after every change.
func (q *Quiz) SetAnswer(id int, answer string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return ErrQuizAlreadyCompleted
	}
	qq := q.find(id)
	if qq == nil {
		return fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
	}
	if err := qq.SetAnswer(answer); err != nil {
		return err
	}
	if q.startTime == nil {
		t := q.now()
		q.startTime = &t
	}
	q.save()
	return nil
}

// ClearAnswer un-answers a single question.
func (q *Quiz) ClearAnswer(id int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return ErrQuizAlreadyCompleted
	}
	qq := q.find(id)
	if qq == nil {
		return fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
	}
	qq.ResetAnswer()
	q.save()
	return nil
}

// ResetAllAnswers discards every answer, the score and the timestamps and
// erases saved state, returning the quiz to PhaseNotStarted. The attempt
// counter is kept.
func (q *Quiz) ResetAllAnswers() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, qq := range q.questions {
		qq.ResetAnswer()
	}
	q.completed = false
	q.score = 0
	q.startTime = nil
	q.endTime = nil
	if q.store != nil {
		q.store.Clear(context.Background(), q.cfg.StorageKey)
	}
}

// AreAllQuestionsAnswered reports whether the quiz may be submitted. An
// empty quiz is never fully answered.
func (q *Quiz) AreAllQuestionsAnswered() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.allAnswered()
}

// Submit locks the answers and scores them. It fails with
// ErrAlreadySubmitted after a previous success and with ErrIncompleteQuiz
// while any question is unanswered.
func (q *Quiz) Submit() (*Result, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return nil, ErrAlreadySubmitted
	}
	if !q.allAnswered() {
		return nil, fmt.Errorf("%w: %d of %d answered",
			ErrIncompleteQuiz, q.answeredCount(), len(q.questions))
	}

	score := 0
	for _, qq := range q.questions {
		if qq.IsCorrect() {
			score++
		}
	}

	end := q.now()
	q.score = score
	q.completed = true
	q.endTime = &end
	q.attempts++
	if q.store != nil {
		q.store.Clear(context.Background(), q.cfg.StorageKey)
	}

	res := q.result()
	q.logger.Info("quiz submitted",
		zap.Int("score", res.Score),
		zap.Int("total", res.Total),
		zap.Bool("passed", res.Passed),
		zap.Int("attempts", res.Attempts))
	return res, nil
}

// Result returns the result of the last submission while the quiz is
// completed.
func (q *Quiz) Result() (*Result, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.completed {
		return nil, false
	}
	return q.result(), true
}

// Progress returns the answered percentage, rounded half up.
func (q *Quiz) Progress() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Percentage(q.answeredCount(), len(q.questions))
}

// AnsweredCount returns the number of answered questions.
func (q *Quiz) AnsweredCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.answeredCount()
}

// Total returns the number of questions.
func (q *Quiz) Total() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.questions)
}

// Score returns the number of correct answers at submission, or 0 before.
func (q *Quiz) Score() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.score
}

// Completed reports whether the quiz has been submitted.
func (q *Quiz) Completed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.completed
}

// Attempts returns the number of successful submissions.
func (q *Quiz) Attempts() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.attempts
}

// Phase returns the current lifecycle phase.
func (q *Quiz) Phase() Phase {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case q.completed:
		return PhaseCompleted
	case q.startTime != nil:
		return PhaseInProgress
	default:
		return PhaseNotStarted
	}
}

// StartTime returns when the first answer was given.
func (q *Quiz) StartTime() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.startTime == nil {
		return time.Time{}, false
	}
	return *q.startTime, true
}

// EndTime returns when the quiz was submitted.
func (q *Quiz) EndTime() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.endTime == nil {
		return time.Time{}, false
	}
	return *q.endTime, true
}

// Questions returns read snapshots of every question in presentation order.
func (q *Quiz) Questions() []question.View {
	q.mu.Lock()
	defer q.mu.Unlock()
	views := make([]question.View, len(q.questions))
	for i, qq := range q.questions {
		views[i] = qq.View()
	}
	return views
}

// Question returns a read snapshot of the question with id.
func (q *Quiz) Question(id int) (question.View, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	qq := q.find(id)
	if qq == nil {
		return question.View{}, false
	}
	return qq.View(), true
}

// AddQuestion appends qq. Keeping ids unique is the caller's job.
func (q *Quiz) AddQuestion(qq *question.Question) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return ErrQuizAlreadyCompleted
	}
	if qq == nil {
		return fmt.Errorf("%w: question is nil", question.ErrInvalidConfiguration)
	}
	q.questions = append(q.questions, qq)
	q.saveIfStarted()
	return nil
}

// RemoveQuestion removes the first question with id.
func (q *Quiz) RemoveQuestion(id int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return ErrQuizAlreadyCompleted
	}
	for i, qq := range q.questions {
		if qq.ID() == id {
			q.questions = append(q.questions[:i:i], q.questions[i+1:]...)
			q.saveIfStarted()
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
}

// Shuffle randomizes the presentation order. A nil r uses the global source.
func (q *Quiz) Shuffle(r *rand.Rand) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return ErrQuizAlreadyCompleted
	}
	swap := func(i, j int) { q.questions[i], q.questions[j] = q.questions[j], q.questions[i] }
	if r == nil {
		rand.Shuffle(len(q.questions), swap)
	} else {
		r.Shuffle(len(q.questions), swap)
	}
	return nil
}

// Elapsed returns the time since the first answer, frozen at submission.
func (q *Quiz) Elapsed() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.elapsed()
}

// Remaining returns the time left under the configured limit, floored at
// zero. ok is false for untimed quizzes.
func (q *Quiz) Remaining() (remaining time.Duration, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cfg.TimeLimit == 0 {
		return 0, false
	}
	return max(q.cfg.TimeLimit-q.elapsed(), 0), true
}

// TimeExpired reports whether a timed quiz has used up its limit. It is
// advisory; answers are still accepted.
func (q *Quiz) TimeExpired() bool {
	rem, ok := q.Remaining()
	return ok && rem == 0
}

// LoadProgress restores answers saved under the storage key. Saved answers
// for unknown ids or values that are no longer options are skipped. It
// reports whether any answer was restored.
func (q *Quiz) LoadProgress(ctx context.Context) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.store == nil || q.completed {
		return false
	}
	st, ok := q.store.Load(ctx, q.cfg.StorageKey)
	if !ok || st.Completed {
		return false
	}

	restored := 0
	for _, a := range st.Answers {
		qq := q.find(a.ID)
		if qq == nil {
			q.logger.Debug("skipping saved answer for unknown question", zap.Int("id", a.ID))
			continue
		}
		if a.SelectedAnswer == nil {
			qq.ResetAnswer()
			continue
		}
		if err := qq.SetAnswer(*a.SelectedAnswer); err != nil {
			q.logger.Warn("skipping invalid saved answer", zap.Int("id", a.ID), zap.Error(err))
			continue
		}
		restored++
	}

	// The start time only comes back together with at least one answer.
	if restored > 0 {
		switch {
		case st.StartTime != nil:
			t := *st.StartTime
			q.startTime = &t
		case q.startTime == nil:
			t := q.now()
			q.startTime = &t
		}
	}
	if st.Attempts > q.attempts {
		q.attempts = st.Attempts
	}

	q.logger.Debug("restored quiz progress",
		zap.String("key", q.cfg.StorageKey),
		zap.Int("answers", restored))
	return restored > 0
}

// find returns the first question with id, or nil. Callers hold mu.
func (q *Quiz) find(id int) *question.Question {
	for _, qq := range q.questions {
		if qq.ID() == id {
			return qq
		}
	}
	return nil
}

func (q *Quiz) answeredCount() int {
	n := 0
	for _, qq := range q.questions {
		if qq.IsAnswered() {
			n++
		}
	}
	return n
}

func (q *Quiz) allAnswered() bool {
	return len(q.questions) > 0 && q.answeredCount() == len(q.questions)
}

func (q *Quiz) elapsed() time.Duration {
	if q.startTime == nil {
		return 0
	}
	end := q.now()
	if q.endTime != nil {
		end = *q.endTime
	}
	return max(end.Sub(*q.startTime), 0)
}

// save writes the current answers unless the quiz is completed.
func (q *Quiz) save() {
	if q.store == nil || q.completed {
		return
	}
	q.store.Save(context.Background(), q.cfg.StorageKey, q.state())
}

func (q *Quiz) saveIfStarted() {
	if q.startTime != nil {
		q.save()
	}
}

// state builds the persisted record for the current answers.
func (q *Quiz) state() persist.State {
	answers := make([]persist.Answer, 0, len(q.questions))
	for _, qq := range q.questions {
		a := persist.Answer{ID: qq.ID()}
		if sel, ok := qq.Selected(); ok {
			a.SelectedAnswer = &sel
		}
		answers = append(answers, a)
	}
	st := persist.State{
		Answers:   answers,
		Completed: q.completed,
		Attempts:  q.attempts,
		Version:   persist.Version,
	}
	if q.startTime != nil {
		t := *q.startTime
		st.StartTime = &t
	}
	return st
}
