// Package mapper translates judge API payloads into model values.
package mapper

import (
	"strings"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
)

var statusByCode = map[int]model.SubmissionStatus{
	10: model.StatusAccepted,
	11: model.StatusWrongAnswer,
	12: model.StatusMemoryLimitExceeded,
	13: model.StatusOutputLimitExceeded,
	14: model.StatusTimeLimitExceeded,
	15: model.StatusRuntimeError,
	16: model.StatusInternalError,
	20: model.StatusCompileError,
	21: model.StatusUnknownError,
}

var statusByLabel = func() map[string]model.SubmissionStatus {
	m := make(map[string]model.SubmissionStatus, len(statusByCode))
	for _, s := range statusByCode {
		m[string(s)] = s
	}
	return m
}()

var difficultyByLevel = map[int]model.Difficulty{
	1: model.DifficultyEasy,
	2: model.DifficultyMedium,
	3: model.DifficultyHard,
}

// ProblemState maps the catalog status string.
func ProblemState(status string) model.ProblemState {
	switch status {
	case "ac":
		return model.StateAccepted
	case "notac":
		return model.StateNotAttempted
	default:
		return model.StateNew
	}
}

// DifficultyFromLevel maps the numeric catalog level.
func DifficultyFromLevel(level int) model.Difficulty {
	if d, ok := difficultyByLevel[level]; ok {
		return d
	}
	return model.DifficultyUnknown
}

// DifficultyFromLabel maps the problem page label. Matching is exact.
func DifficultyFromLabel(label string) model.Difficulty {
	switch d := model.Difficulty(label); d {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		return d
	default:
		return model.DifficultyUnknown
	}
}

// StatusFromCode maps a numeric verdict. Unmapped codes are Unknown Error.
func StatusFromCode(code int) model.SubmissionStatus {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return model.StatusUnknownError
}

// StatusFromLabel maps a verdict display string. Matching is exact.
func StatusFromLabel(label string) model.SubmissionStatus {
	if s, ok := statusByLabel[label]; ok {
		return s
	}
	return model.StatusUnknownError
}

// IsTestErrorKey reports whether a test-run payload key carries an error.
func IsTestErrorKey(key string) bool {
	return strings.HasPrefix(key, "full_") && strings.HasSuffix(key, "_error")
}

// IsSubmissionErrorKey reports whether a submission payload key may carry an
// error. The value must also be truthy to count.
func IsSubmissionErrorKey(key string) bool {
	return strings.Contains(key, "error")
}
