package quiz

import (
	"github.com/XSaadiX/Quiz-app/internal/question"
)

// Tally counts questions in one group.
type Tally struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// Statistics is a read-only projection of quiz state.
type Statistics struct {
	Total      int                     `json:"total"`
	Answered   int                     `json:"answered"`
	Progress   int                     `json:"progress"`
	ByKind     map[question.Kind]Tally `json:"byKind"`
	ByCategory map[string]Tally        `json:"byCategory,omitempty"`

	ElapsedSeconds          float64 `json:"elapsedSeconds"`
	AverageSecondsPerAnswer float64 `json:"averageSecondsPerAnswer"`

	Phase    string `json:"phase"`
	Attempts int    `json:"attempts"`

	// Score and Passed are set only once the quiz is completed.
	Score  *int  `json:"score"`
	Passed *bool `json:"passed"`
}

// Statistics computes the current statistics without changing state.
func (q *Quiz) Statistics() Statistics {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.statistics()
}

func (q *Quiz) statistics() Statistics {
	st := Statistics{
		Total:    len(q.questions),
		ByKind:   make(map[question.Kind]Tally, len(question.AllKinds())),
		Attempts: q.attempts,
	}
	for _, k := range question.AllKinds() {
		st.ByKind[k] = Tally{}
	}

	for _, qq := range q.questions {
		kind := st.ByKind[qq.Kind()]
		kind.add(qq)
		st.ByKind[qq.Kind()] = kind

		if c := qq.Category(); c != "" {
			if st.ByCategory == nil {
				st.ByCategory = make(map[string]Tally)
			}
			cat := st.ByCategory[c]
			cat.add(qq)
			st.ByCategory[c] = cat
		}

		if qq.IsAnswered() {
			st.Answered++
		}
	}

	st.Progress = Percentage(st.Answered, st.Total)

	elapsed := q.elapsed()
	st.ElapsedSeconds = elapsed.Seconds()
	if st.Answered > 0 {
		st.AverageSecondsPerAnswer = elapsed.Seconds() / float64(st.Answered)
	}

	switch {
	case q.completed:
		st.Phase = PhaseCompleted.String()
		score := q.score
		passed := Passed(q.score, st.Total, q.cfg.PassThreshold)
		st.Score = &score
		st.Passed = &passed
	case q.startTime != nil:
		st.Phase = PhaseInProgress.String()
	default:
		st.Phase = PhaseNotStarted.String()
	}
	return st
}

func (t *Tally) add(qq *question.Question) {
	t.Total++
	if qq.IsAnswered() {
		t.Answered++
	}
	if qq.IsCorrect() {
		t.Correct++
	}
}
