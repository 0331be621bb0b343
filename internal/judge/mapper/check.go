package mapper

import (
	"encoding/json"
	"strconv"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
)

type checkPayload struct {
	State             string          `json:"state"`
	StatusCode        looseInt        `json:"status_code"`
	StatusRuntime     looseString     `json:"status_runtime"`
	StatusMemory      looseString     `json:"status_memory"`
	Lang              string          `json:"lang"`
	CodeAnswer        json.RawMessage `json:"code_answer"`
	CodeOutput        json.RawMessage `json:"code_output"`
	StdOutput         json.RawMessage `json:"std_output"`
	Input             json.RawMessage `json:"input"`
	ExpectedOutput    json.RawMessage `json:"expected_output"`
	RuntimePercentile json.RawMessage `json:"runtime_percentile"`
	MemoryPercentile  json.RawMessage `json:"memory_percentile"`
}

func decodeCheck(data []byte) (checkPayload, []field, error) {
	var payload checkPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, nil, errors.Wrapf(err, errors.InvalidFormat, "decode check response failed: %v", err)
	}
	fields, err := orderedFields(data)
	if err != nil {
		return payload, nil, errors.Wrapf(err, errors.InvalidFormat, "decode check response failed: %v", err)
	}
	return payload, fields, nil
}

func runningState(state string) (model.JobState, bool) {
	switch s := model.JobState(state); s {
	case model.JobPending, model.JobStarted:
		return s, true
	default:
		return "", false
	}
}

// TestCheck maps one check of a test-run job.
func TestCheck(data []byte) (model.PollResult[model.TestResult], error) {
	payload, fields, err := decodeCheck(data)
	if err != nil {
		return model.PollResult[model.TestResult]{}, err
	}
	if state, ok := runningState(payload.State); ok {
		return model.Running[model.TestResult](state), nil
	}

	errs := []string{}
	for _, f := range fields {
		if IsTestErrorKey(f.Key) && !isNull(f.Value) {
			errs = append(errs, text(f.Value))
		}
	}
	return model.Finished(model.TestResult{
		Status:  StatusFromCode(int(payload.StatusCode)),
		Answer:  textList(payload.CodeAnswer),
		Runtime: string(payload.StatusRuntime),
		Errors:  errs,
		Stdout:  textList(payload.CodeOutput),
	}), nil
}

// SubmissionCheck maps one check of a submitted job.
func SubmissionCheck(data []byte) (model.PollResult[model.SubmissionResult], error) {
	payload, fields, err := decodeCheck(data)
	if err != nil {
		return model.PollResult[model.SubmissionResult]{}, err
	}
	if state, ok := runningState(payload.State); ok {
		return model.Running[model.SubmissionResult](state), nil
	}

	errs := []string{}
	for _, f := range fields {
		if IsSubmissionErrorKey(f.Key) && truthy(f.Value) {
			errs = append(errs, text(f.Value))
		}
	}
	stdout := ""
	if !isNull(payload.StdOutput) {
		stdout = text(payload.StdOutput)
	}
	return model.Finished(model.SubmissionResult{
		Status:            StatusFromCode(int(payload.StatusCode)),
		Lang:              payload.Lang,
		Runtime:           string(payload.StatusRuntime),
		Memory:            string(payload.StatusMemory),
		Errors:            errs,
		Stdout:            stdout,
		DataInput:         optionalText(payload.Input),
		ActualAnswer:      optionalText(payload.CodeOutput),
		ExpectedAnswer:    optionalText(payload.ExpectedOutput),
		RuntimePercentile: optionalFloat(payload.RuntimePercentile),
		MemoryPercentile:  optionalFloat(payload.MemoryPercentile),
	}), nil
}

func optionalText(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	s := text(raw)
	return &s
}

func optionalFloat(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}
