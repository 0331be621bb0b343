package model

import "encoding/json"

// PollResult is either a running marker or a terminal result of type T.
// State is the tag: JobPending and JobStarted mean running, JobFinished means
// Result is valid. Callers switch on State.
type PollResult[T any] struct {
	State  JobState
	Result T
}

// Running builds a non-terminal poll result.
func Running[T any](state JobState) PollResult[T] {
	return PollResult[T]{State: state}
}

// Finished builds a terminal poll result.
func Finished[T any](result T) PollResult[T] {
	return PollResult[T]{State: JobFinished, Result: result}
}

// Done reports whether the job reached a terminal state.
func (p PollResult[T]) Done() bool {
	return p.State == JobFinished
}

// Running returns the running marker when the job is still in flight.
func (p PollResult[T]) Running() (RunningSubmission, bool) {
	if p.Done() {
		return RunningSubmission{}, false
	}
	return RunningSubmission{State: p.State}, true
}

// Terminal returns the result when the job is finished.
func (p PollResult[T]) Terminal() (T, bool) {
	return p.Result, p.Done()
}

// MarshalJSON renders the running marker or the bare result.
func (p PollResult[T]) MarshalJSON() ([]byte, error) {
	if r, ok := p.Running(); ok {
		return json.Marshal(r)
	}
	return json.Marshal(p.Result)
}
