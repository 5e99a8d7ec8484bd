package services

import (
	"fmt"
	"sync/atomic"
)

// SubmissionState is the coordinator's lifecycle:
//
//	Idle -> Submitting -> Done -> Submitting -> Done ...
//
// Any other transition is refused.
type SubmissionState int32

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateDone
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

func (s SubmissionState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SubmissionState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StateIdle
	case "submitting":
		*s = StateSubmitting
	case "done":
		*s = StateDone
	default:
		return fmt.Errorf("unknown submission state %q", b)
	}
	return nil
}

func (s SubmissionState) canTransition(to SubmissionState) bool {
	switch s {
	case StateIdle, StateDone:
		return to == StateSubmitting
	case StateSubmitting:
		return to == StateDone
	default:
		return false
	}
}

type stateMachine struct {
	v atomic.Int32
}

func (m *stateMachine) load() SubmissionState {
	return SubmissionState(m.v.Load())
}

// transition moves to `to` if allowed from the current state.
func (m *stateMachine) transition(to SubmissionState) bool {
	for {
		cur := m.load()
		if !cur.canTransition(to) {
			return false
		}
		if m.v.CompareAndSwap(int32(cur), int32(to)) {
			return true
		}
	}
}
