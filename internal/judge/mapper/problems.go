package mapper

import (
	"encoding/json"
	stderrors "errors"

	"github.com/wanglun/leetcode.vim/internal/judge/model"
	"github.com/wanglun/leetcode.vim/pkg/errors"
)

type problemListPayload struct {
	StatStatusPairs []struct {
		Stat struct {
			QuestionID         looseString `json:"question_id"`
			FrontendQuestionID looseString `json:"frontend_question_id"`
			Title              string      `json:"question__title"`
			TitleSlug          string      `json:"question__title_slug"`
			Hide               bool        `json:"question__hide"`
			TotalAcs           int64       `json:"total_acs"`
			TotalSubmitted     int64       `json:"total_submitted"`
		} `json:"stat"`
		Status     *string `json:"status"`
		Difficulty struct {
			Level int `json:"level"`
		} `json:"difficulty"`
		PaidOnly  bool     `json:"paid_only"`
		Frequency *float64 `json:"frequency"`
	} `json:"stat_status_pairs"`
}

// Problems maps the catalog payload. Hidden problems are skipped. A visible
// problem with no submissions has no defined acceptance rate and fails the
// whole mapping.
func Problems(data []byte) ([]model.Problem, error) {
	var payload problemListPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrapf(err, errors.InvalidFormat, "decode problem list failed: %v", err)
	}
	problems := make([]model.Problem, 0, len(payload.StatStatusPairs))
	for _, pair := range payload.StatStatusPairs {
		stat := pair.Stat
		if stat.Hide {
			continue
		}
		if stat.TotalSubmitted == 0 {
			return nil, errors.Newf(errors.InvalidFormat, "problem %s has no submissions", stat.TitleSlug).
				WithDetail("title_slug", stat.TitleSlug)
		}
		state := ""
		if pair.Status != nil {
			state = *pair.Status
		}
		problems = append(problems, model.Problem{
			QuestionID:         string(stat.QuestionID),
			FrontendQuestionID: string(stat.FrontendQuestionID),
			Title:              stat.Title,
			TitleSlug:          stat.TitleSlug,
			Difficulty:         DifficultyFromLevel(pair.Difficulty.Level),
			State:              ProblemState(state),
			PaidOnly:           pair.PaidOnly,
			AcRate:             float64(stat.TotalAcs) / float64(stat.TotalSubmitted),
			Frequency:          pair.Frequency,
		})
	}
	return problems, nil
}

type questionPayload struct {
	Data struct {
		Question *struct {
			QuestionID         looseString `json:"questionId"`
			QuestionFrontendID looseString `json:"questionFrontendId"`
			Title              string      `json:"title"`
			TitleSlug          string      `json:"titleSlug"`
			Content            string      `json:"content"`
			IsPaidOnly         bool        `json:"isPaidOnly"`
			Difficulty         string      `json:"difficulty"`
			Likes              int         `json:"likes"`
			Dislikes           int         `json:"dislikes"`
			CodeSnippets       []struct {
				Lang     string `json:"lang"`
				LangSlug string `json:"langSlug"`
				Code     string `json:"code"`
			} `json:"codeSnippets"`
			Stats          string `json:"stats"`
			SampleTestCase string `json:"sampleTestCase"`
			EnableRunCode  bool   `json:"enableRunCode"`
		} `json:"question"`
	} `json:"data"`
}

// questionStats is embedded in the question payload as a JSON string.
type questionStats struct {
	TotalAccepted   looseString `json:"totalAccepted"`
	TotalSubmission looseString `json:"totalSubmission"`
	AcRate          looseString `json:"acRate"`
}

// ErrNoQuestion is returned when the payload decodes but carries no question.
var ErrNoQuestion = stderrors.New("question is null")

// ProblemDetail maps the questionData GraphQL payload.
func ProblemDetail(data []byte) (model.ProblemDetail, error) {
	var payload questionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.ProblemDetail{}, errors.Wrapf(err, errors.InvalidFormat, "decode question failed: %v", err)
	}
	q := payload.Data.Question
	if q == nil {
		return model.ProblemDetail{}, ErrNoQuestion
	}

	var stats questionStats
	if q.Stats != "" {
		if err := json.Unmarshal([]byte(q.Stats), &stats); err != nil {
			return model.ProblemDetail{}, errors.Wrapf(err, errors.InvalidFormat, "decode question stats failed: %v", err)
		}
	}

	templates := make(map[string]string, len(q.CodeSnippets))
	for _, snippet := range q.CodeSnippets {
		templates[snippet.LangSlug] = snippet.Code
	}

	return model.ProblemDetail{
		QuestionID:         string(q.QuestionID),
		FrontendQuestionID: string(q.QuestionFrontendID),
		Title:              q.Title,
		TitleSlug:          q.TitleSlug,
		Difficulty:         DifficultyFromLabel(q.Difficulty),
		PaidOnly:           q.IsPaidOnly,
		Description:        q.Content,
		Templates:          templates,
		Testable:           q.EnableRunCode,
		Testcase:           q.SampleTestCase,
		TotalAccepted:      string(stats.TotalAccepted),
		TotalSubmission:    string(stats.TotalSubmission),
		AcRate:             string(stats.AcRate),
		Likes:              q.Likes,
		Dislikes:           q.Dislikes,
	}, nil
}
