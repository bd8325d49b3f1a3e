package persist

import (
	"encoding/json"
	"fmt"
	"time"
)

// Version is the record format written by this build. Records carrying any
// other version are treated as absent.
const Version = "1"

// Answer is the saved selection for one question. A nil SelectedAnswer
// means the question was unanswered.
type Answer struct {
	ID             int     `json:"id"`
	SelectedAnswer *string `json:"selectedAnswer"`
}

// State is the durable snapshot of an in-progress quiz session.
type State struct {
	Answers   []Answer   `json:"answers"`
	StartTime *time.Time `json:"startTime"`
	Completed bool       `json:"completed"`
	Attempts  int        `json:"attempts"`
	Version   string     `json:"version"`
}

// Selections returns the answered entries keyed by question id.
func (s State) Selections() map[int]string {
	m := make(map[int]string, len(s.Answers))
	for _, a := range s.Answers {
		if a.SelectedAnswer != nil {
			m[a.ID] = *a.SelectedAnswer
		}
	}
	return m
}

func encodeState(s State) ([]byte, error) {
	if s.Answers == nil {
		s.Answers = []Answer{}
	}
	s.Version = Version
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return b, nil
}

func decodeState(b []byte) (State, error) {
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return s, nil
}
