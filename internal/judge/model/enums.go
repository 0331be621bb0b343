package model

// ProblemState is the viewer's progress on a problem.
type ProblemState string

const (
	StateNew          ProblemState = "New"
	StateNotAttempted ProblemState = "NotAttempted"
	StateAccepted     ProblemState = "Accepted"
)

// Difficulty is the problem difficulty.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyUnknown Difficulty = "Unknown"
)

// SubmissionStatus is the judge verdict label.
type SubmissionStatus string

const (
	StatusAccepted            SubmissionStatus = "Accepted"
	StatusWrongAnswer         SubmissionStatus = "Wrong Answer"
	StatusMemoryLimitExceeded SubmissionStatus = "Memory Limit Exceeded"
	StatusOutputLimitExceeded SubmissionStatus = "Output Limit Exceeded"
	StatusTimeLimitExceeded   SubmissionStatus = "Time Limit Exceeded"
	StatusRuntimeError        SubmissionStatus = "Runtime Error"
	StatusInternalError       SubmissionStatus = "Internal Error"
	StatusCompileError        SubmissionStatus = "Compile Error"
	StatusUnknownError        SubmissionStatus = "Unknown Error"
)

// JobState tags a poll result.
type JobState string

const (
	JobPending  JobState = "PENDING"
	JobStarted  JobState = "STARTED"
	JobFinished JobState = "FINISHED"
)

func (s ProblemState) MarshalText() ([]byte, error) { return []byte(s), nil }

func (s *ProblemState) UnmarshalText(b []byte) error {
	switch v := ProblemState(b); v {
	case StateNew, StateNotAttempted, StateAccepted:
		*s = v
	default:
		*s = StateNew
	}
	return nil
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d), nil }

func (d *Difficulty) UnmarshalText(b []byte) error {
	switch v := Difficulty(b); v {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyUnknown:
		*d = v
	default:
		*d = DifficultyUnknown
	}
	return nil
}

func (s SubmissionStatus) MarshalText() ([]byte, error) { return []byte(s), nil }

func (s *SubmissionStatus) UnmarshalText(b []byte) error {
	switch v := SubmissionStatus(b); v {
	case StatusAccepted, StatusWrongAnswer, StatusMemoryLimitExceeded, StatusOutputLimitExceeded,
		StatusTimeLimitExceeded, StatusRuntimeError, StatusInternalError, StatusCompileError, StatusUnknownError:
		*s = v
	default:
		*s = StatusUnknownError
	}
	return nil
}
