package quiz

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XSaadiX/Quiz-app/internal/persist"
	"github.com/XSaadiX/Quiz-app/internal/question"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingStore counts persistence calls.
type recordingStore struct {
	saves  []persist.State
	clears int
	loaded *persist.State
}

func (r *recordingStore) Save(_ context.Context, _ string, st persist.State) {
	r.saves = append(r.saves, st)
}

func (r *recordingStore) Load(context.Context, string) (persist.State, bool) {
	if r.loaded == nil {
		return persist.State{}, false
	}
	return *r.loaded, true
}

func (r *recordingStore) Clear(context.Context, string) { r.clears++ }

// testQuestions builds n questions alternating multiple choice and
// true-false. Odd ids are multiple choice with correct answer "b"; even ids
// are true-false with correct answer "True".
func testQuestions(t *testing.T, n int) []*question.Question {
	t.Helper()
	qs := make([]*question.Question, 0, n)
	for id := 1; id <= n; id++ {
		var (
			q   *question.Question
			err error
		)
		if id%2 == 1 {
			q, err = question.NewMultipleChoice(id, fmt.Sprintf("Question %d", id),
				[]string{"a", "b", "c"}, "b", question.InCategory("letters"))
		} else {
			q, err = question.NewTrueFalse(id, fmt.Sprintf("Statement %d", id), question.True,
				question.InCategory("facts"))
		}
		require.NoError(t, err)
		qs = append(qs, q)
	}
	return qs
}

func correctFor(id int) string {
	if id%2 == 1 {
		return "b"
	}
	return question.True
}

func wrongFor(id int) string {
	if id%2 == 1 {
		return "a"
	}
	return question.False
}

// answerAll answers every question, the first `correct` of them correctly.
func answerAll(t *testing.T, q *Quiz, total, correct int) {
	t.Helper()
	for id := 1; id <= total; id++ {
		ans := wrongFor(id)
		if id <= correct {
			ans = correctFor(id)
		}
		require.NoError(t, q.SetAnswer(id, ans))
	}
}

func newTestQuiz(t *testing.T, n int, opts ...Option) (*Quiz, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	q, err := New(testQuestions(t, n), opts...)
	require.NoError(t, err)
	return q, clock
}

func TestNew_Defaults(t *testing.T) {
	q, _ := newTestQuiz(t, 3)

	assert.Equal(t, DefaultPassThreshold, q.Config().PassThreshold)
	assert.Equal(t, DefaultStorageKey, q.Config().StorageKey)
	assert.Equal(t, PhaseNotStarted, q.Phase())
	assert.Equal(t, 0, q.Score())
	assert.Equal(t, 0, q.Attempts())
	assert.NotEmpty(t, q.SessionID())
	_, started := q.StartTime()
	assert.False(t, started)
}

func TestNew_PassThresholdBounds(t *testing.T) {
	tests := []struct {
		threshold float64
		wantErr   bool
	}{
		{0, true},
		{-0.5, true},
		{1.01, true},
		{math.NaN(), true},
		{0.01, false},
		{1, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.threshold), func(t *testing.T) {
			_, err := New(nil, WithPassThreshold(tt.threshold))
			if tt.wantErr {
				assert.ErrorIs(t, err, question.ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_RejectsNilQuestionAndNegativeLimit(t *testing.T) {
	_, err := New([]*question.Question{nil})
	assert.ErrorIs(t, err, question.ErrInvalidConfiguration)

	_, err = New(nil, WithTimeLimit(-time.Second))
	assert.ErrorIs(t, err, question.ErrInvalidConfiguration)
}

func TestSetAnswer_StartsClockOnce(t *testing.T) {
	q, clock := newTestQuiz(t, 3)
	first := clock.Now()

	require.NoError(t, q.SetAnswer(1, "a"))
	clock.Advance(time.Minute)
	require.NoError(t, q.SetAnswer(2, question.False))
	require.NoError(t, q.SetAnswer(1, "b"))

	start, ok := q.StartTime()
	require.True(t, ok)
	assert.True(t, start.Equal(first))
	assert.Equal(t, PhaseInProgress, q.Phase())
}

func TestSetAnswer_UnknownQuestion(t *testing.T) {
	q, _ := newTestQuiz(t, 2)

	err := q.SetAnswer(99, "a")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	assert.Equal(t, PhaseNotStarted, q.Phase(), "failed answer must not start the quiz")
}

func TestSetAnswer_InvalidAnswerKeepsPriorSelection(t *testing.T) {
	q, _ := newTestQuiz(t, 2)
	require.NoError(t, q.SetAnswer(1, "c"))

	err := q.SetAnswer(1, "z")
	assert.ErrorIs(t, err, question.ErrInvalidAnswer)

	v, ok := q.Question(1)
	require.True(t, ok)
	assert.Equal(t, "c", v.Selected)
}

func TestClearAnswer(t *testing.T) {
	q, _ := newTestQuiz(t, 2)
	require.NoError(t, q.SetAnswer(1, "c"))
	require.NoError(t, q.ClearAnswer(1))

	v, _ := q.Question(1)
	assert.False(t, v.Answered)
	assert.ErrorIs(t, q.ClearAnswer(42), ErrQuestionNotFound)
}

func TestAreAllQuestionsAnswered(t *testing.T) {
	q, _ := newTestQuiz(t, 2)
	assert.False(t, q.AreAllQuestionsAnswered())

	require.NoError(t, q.SetAnswer(1, "a"))
	assert.False(t, q.AreAllQuestionsAnswered())

	require.NoError(t, q.SetAnswer(2, question.True))
	assert.True(t, q.AreAllQuestionsAnswered())

	empty, err := New(nil)
	require.NoError(t, err)
	assert.False(t, empty.AreAllQuestionsAnswered())
}

func TestSubmit_Incomplete(t *testing.T) {
	q, _ := newTestQuiz(t, 3)
	require.NoError(t, q.SetAnswer(1, "b"))

	res, err := q.Submit()
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrIncompleteQuiz)
	assert.False(t, q.Completed())
	assert.Equal(t, 0, q.Attempts())
}

func TestSubmit_EmptyQuiz(t *testing.T) {
	q, err := New(nil)
	require.NoError(t, err)

	_, err = q.Submit()
	assert.ErrorIs(t, err, ErrIncompleteQuiz)
}

func TestSubmit_TwelveQuestionsNineCorrect(t *testing.T) {
	q, _ := newTestQuiz(t, 12)
	answerAll(t, q, 12, 9)

	res, err := q.Submit()
	require.NoError(t, err)

	assert.Equal(t, 9, res.Score)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 75, res.Percentage)
	assert.True(t, res.Passed)
	assert.Equal(t, 9, res.PassingScore)
	assert.Equal(t, 1, res.Attempts)
	assert.Len(t, res.Questions, 12)
	assert.Len(t, res.Missed(), 3)
}

func TestSubmit_InclusiveThresholdBoundary(t *testing.T) {
	q, _ := newTestQuiz(t, 10)
	answerAll(t, q, 10, 7)

	res, err := q.Submit()
	require.NoError(t, err)

	assert.Equal(t, 70, res.Percentage)
	assert.True(t, res.Passed)
	assert.Equal(t, 7, res.PassingScore)
}

func TestSubmit_ThresholdJustAboveScoreFails(t *testing.T) {
	q, _ := newTestQuiz(t, 10, WithPassThreshold(0.7000000001))
	answerAll(t, q, 10, 7)

	res, err := q.Submit()
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 8, res.PassingScore)
}

func TestSubmit_BelowThresholdFails(t *testing.T) {
	q, _ := newTestQuiz(t, 10)
	answerAll(t, q, 10, 6)

	res, err := q.Submit()
	require.NoError(t, err)
	assert.Equal(t, 60, res.Percentage)
	assert.False(t, res.Passed)
}

func TestSubmit_SecondCallRejected(t *testing.T) {
	q, _ := newTestQuiz(t, 4)
	answerAll(t, q, 4, 4)

	_, err := q.Submit()
	require.NoError(t, err)

	res, err := q.Submit()
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, q.Attempts())
	assert.Equal(t, 4, q.Score())
}

func TestSubmit_DurationAndTimestamps(t *testing.T) {
	q, clock := newTestQuiz(t, 2)
	require.NoError(t, q.SetAnswer(1, "b"))
	clock.Advance(89*time.Second + 600*time.Millisecond)
	require.NoError(t, q.SetAnswer(2, question.True))

	res, err := q.Submit()
	require.NoError(t, err)
	assert.Equal(t, int64(90), res.Duration)
	assert.True(t, res.CompletedAt.Equal(clock.Now()))

	end, ok := q.EndTime()
	require.True(t, ok)
	assert.True(t, end.Equal(clock.Now()))

	// Elapsed is frozen at submission.
	clock.Advance(time.Hour)
	assert.Equal(t, 89*time.Second+600*time.Millisecond, q.Elapsed())
}

func TestSubmit_LocksMutations(t *testing.T) {
	q, _ := newTestQuiz(t, 2)
	answerAll(t, q, 2, 1)
	_, err := q.Submit()
	require.NoError(t, err)

	extra, err := question.NewTrueFalse(3, "extra", question.True)
	require.NoError(t, err)

	assert.ErrorIs(t, q.SetAnswer(1, "a"), ErrQuizAlreadyCompleted)
	assert.ErrorIs(t, q.ClearAnswer(1), ErrQuizAlreadyCompleted)
	assert.ErrorIs(t, q.AddQuestion(extra), ErrQuizAlreadyCompleted)
	assert.ErrorIs(t, q.RemoveQuestion(1), ErrQuizAlreadyCompleted)
	assert.ErrorIs(t, q.Shuffle(nil), ErrQuizAlreadyCompleted)
	assert.Equal(t, 2, q.Total())
}

func TestSubmitSucceedsIffAnsweredAndNotCompleted(t *testing.T) {
	q, _ := newTestQuiz(t, 3)
	for step := 0; step < 6; step++ {
		eligible := q.AreAllQuestionsAnswered() && !q.Completed()
		_, err := q.Submit()
		assert.Equal(t, eligible, err == nil, "step %d", step)

		if step < 3 {
			_ = q.SetAnswer(step+1, correctFor(step+1))
		}
	}
}

func TestResetAllAnswers_AfterSubmit(t *testing.T) {
	q, _ := newTestQuiz(t, 3)
	answerAll(t, q, 3, 3)
	_, err := q.Submit()
	require.NoError(t, err)

	q.ResetAllAnswers()

	assert.Equal(t, 0, q.Score())
	assert.False(t, q.Completed())
	assert.Equal(t, PhaseNotStarted, q.Phase())
	assert.Equal(t, 1, q.Attempts(), "attempts survive a reset")
	for _, v := range q.Questions() {
		assert.False(t, v.Answered, "question %d", v.ID)
	}
	_, ok := q.StartTime()
	assert.False(t, ok)
	_, ok = q.EndTime()
	assert.False(t, ok)
	_, ok = q.Result()
	assert.False(t, ok)

	// Retake.
	answerAll(t, q, 3, 1)
	res, err := q.Submit()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 1, res.Score)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		total, answered, want int
	}{
		{0, 0, 0},
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 13},
		{4, 4, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.answered, tt.total), func(t *testing.T) {
			q, _ := newTestQuiz(t, tt.total)
			for id := 1; id <= tt.answered; id++ {
				require.NoError(t, q.SetAnswer(id, correctFor(id)))
			}
			assert.Equal(t, tt.want, q.Progress())
			assert.Equal(t, tt.answered, q.AnsweredCount())
		})
	}
}

func TestAddAndRemoveQuestion(t *testing.T) {
	q, _ := newTestQuiz(t, 2)

	extra, err := question.NewTrueFalse(3, "extra", question.False)
	require.NoError(t, err)
	require.NoError(t, q.AddQuestion(extra))
	assert.Equal(t, 3, q.Total())

	require.NoError(t, q.RemoveQuestion(1))
	ids := []int{}
	for _, v := range q.Questions() {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []int{2, 3}, ids)

	assert.ErrorIs(t, q.RemoveQuestion(1), ErrQuestionNotFound)
	assert.ErrorIs(t, q.AddQuestion(nil), question.ErrInvalidConfiguration)
}

func TestShuffle_KeepsQuestionSet(t *testing.T) {
	q, _ := newTestQuiz(t, 8)
	require.NoError(t, q.Shuffle(rand.New(rand.NewPCG(1, 2))))

	var ids []int
	for _, v := range q.Questions() {
		ids = append(ids, v.ID)
	}
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids)
}

func TestRemainingAndTimeExpired(t *testing.T) {
	untimed, _ := newTestQuiz(t, 1)
	_, ok := untimed.Remaining()
	assert.False(t, ok)
	assert.False(t, untimed.TimeExpired())

	q, clock := newTestQuiz(t, 2, WithTimeLimit(time.Minute))
	rem, ok := q.Remaining()
	require.True(t, ok)
	assert.Equal(t, time.Minute, rem, "clock starts with the first answer")

	require.NoError(t, q.SetAnswer(1, "b"))
	clock.Advance(45 * time.Second)
	rem, _ = q.Remaining()
	assert.Equal(t, 15*time.Second, rem)
	assert.False(t, q.TimeExpired())

	clock.Advance(time.Minute)
	rem, _ = q.Remaining()
	assert.Equal(t, time.Duration(0), rem)
	assert.True(t, q.TimeExpired())

	// Advisory only: answers are still accepted.
	assert.NoError(t, q.SetAnswer(2, question.True))
}

func TestConcurrentAnswersAreSerialized(t *testing.T) {
	q, _ := newTestQuiz(t, 20)
	var wg sync.WaitGroup
	for id := 1; id <= 20; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = q.SetAnswer(id, correctFor(id))
			_ = q.Statistics()
		}(id)
	}
	wg.Wait()
	assert.True(t, q.AreAllQuestionsAnswered())
}
