package mapper

import (
	"encoding/json"
	"time"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
)

type submissionListPayload struct {
	Data struct {
		SubmissionList struct {
			Submissions []struct {
				ID            looseString `json:"id"`
				StatusDisplay string      `json:"statusDisplay"`
				Lang          string      `json:"lang"`
				Runtime       string      `json:"runtime"`
				Timestamp     looseInt    `json:"timestamp"`
				Memory        string      `json:"memory"`
			} `json:"submissions"`
		} `json:"submissionList"`
	} `json:"data"`
}

// Submissions maps the Submissions GraphQL payload.
func Submissions(data []byte) ([]model.Submission, error) {
	var payload submissionListPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrapf(err, errors.InvalidFormat, "decode submission list failed: %v", err)
	}
	rows := payload.Data.SubmissionList.Submissions
	submissions := make([]model.Submission, 0, len(rows))
	for _, row := range rows {
		submissions = append(submissions, model.Submission{
			ID:      string(row.ID),
			Time:    time.Unix(int64(row.Timestamp), 0).UTC(),
			Lang:    row.Lang,
			Runtime: row.Runtime,
			Memory:  row.Memory,
			Status:  StatusFromLabel(row.StatusDisplay),
		})
	}
	return submissions, nil
}

type testJobPayload struct {
	InterpretID         looseString `json:"interpret_id"`
	InterpretExpectedID looseString `json:"interpret_expected_id"`
}

// TestJob maps the interpret_solution response.
func TestJob(data []byte) (model.TestJob, error) {
	var payload testJobPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.TestJob{}, errors.Wrapf(err, errors.InvalidFormat, "decode test job failed: %v", err)
	}
	if payload.InterpretID == "" {
		return model.TestJob{}, errors.New(errors.InvalidFormat).WithMessage("test job carries no interpret_id")
	}
	return model.TestJob{
		ActualID:   string(payload.InterpretID),
		ExpectedID: string(payload.InterpretExpectedID),
	}, nil
}

// SubmissionID maps the submit response. Numeric ids come back as strings.
func SubmissionID(data []byte) (string, error) {
	var payload struct {
		SubmissionID looseString `json:"submission_id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", errors.Wrapf(err, errors.InvalidFormat, "decode submit response failed: %v", err)
	}
	if payload.SubmissionID == "" {
		return "", errors.New(errors.InvalidFormat).WithMessage("submit response carries no submission_id")
	}
	return string(payload.SubmissionID), nil
}
