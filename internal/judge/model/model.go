// Package model holds the values the judge client hands to callers.
// They serialize to plain JSON with snake_case keys for the editor side.
package model

import "time"

// NotFound is the sentinel for a field the legacy submission page did not carry.
const NotFound = "Not found"

// TimePeriodFrequency is how often a problem appeared over several windows.
type TimePeriodFrequency struct {
	SixMonths float64 `json:"six_months"`
	OneYear   float64 `json:"one_year"`
	TwoYears  float64 `json:"two_years"`
	AllTime   float64 `json:"all_time"`
}

// Problem is one entry of the problem catalog.
type Problem struct {
	QuestionID          string               `json:"question_id"`
	FrontendQuestionID  string               `json:"frontend_question_id"`
	Title               string               `json:"title"`
	TitleSlug           string               `json:"title_slug"`
	Difficulty          Difficulty           `json:"difficulty"`
	State               ProblemState         `json:"state"`
	PaidOnly            bool                 `json:"paid_only"`
	AcRate              float64              `json:"ac_rate"`
	Frequency           *float64             `json:"frequency"`
	TimePeriodFrequency *TimePeriodFrequency `json:"time_period_frequency"`
}

// ProblemDetail is the full problem statement with code templates.
type ProblemDetail struct {
	QuestionID         string            `json:"question_id"`
	FrontendQuestionID string            `json:"frontend_question_id"`
	Title              string            `json:"title"`
	TitleSlug          string            `json:"title_slug"`
	Difficulty         Difficulty        `json:"difficulty"`
	PaidOnly           bool              `json:"paid_only"`
	Description        string            `json:"description"`
	Templates          map[string]string `json:"templates"`
	Testable           bool              `json:"testable"`
	Testcase           string            `json:"testcase"`
	TotalAccepted      string            `json:"total_accepted"`
	TotalSubmission    string            `json:"total_submission"`
	AcRate             string            `json:"ac_rate"`
	Likes              int               `json:"likes"`
	Dislikes           int               `json:"dislikes"`
}

// Submission is one row of a problem's submission history.
type Submission struct {
	ID      string           `json:"id"`
	Time    time.Time        `json:"time"`
	Lang    string           `json:"lang"`
	Runtime string           `json:"runtime"`
	Memory  string           `json:"memory"`
	Status  SubmissionStatus `json:"status"`
}

// SubmissionDetail is a past submission read from its detail page.
// Text fields hold NotFound when the page did not carry them.
type SubmissionDetail struct {
	ID                string           `json:"id"`
	Status            SubmissionStatus `json:"status"`
	Runtime           string           `json:"runtime"`
	Passed            string           `json:"passed"`
	Total             string           `json:"total"`
	DataInput         string           `json:"data_input"`
	ActualAnswer      string           `json:"actual_answer"`
	ExpectedAnswer    string           `json:"expected_answer"`
	ProblemID         string           `json:"problem_id"`
	TitleSlug         string           `json:"title_slug"`
	Lang              string           `json:"lang"`
	Code              string           `json:"code"`
	RuntimePercentile float64          `json:"runtime_percentile"`
}

// SubmissionRequest is the code a caller wants judged.
type SubmissionRequest struct {
	ProblemID string `json:"problem_id"`
	TitleSlug string `json:"title_slug"`
	Lang      string `json:"lang"`
	Code      string `json:"code"`
	DataInput string `json:"data_input"`
}

// TestJob identifies the two jobs created by a test run: the caller's code
// and the reference solution on the same input.
type TestJob struct {
	ActualID   string `json:"actual_id"`
	ExpectedID string `json:"expected_id"`
}

// RunningSubmission marks a job the judge has not finished.
type RunningSubmission struct {
	State JobState `json:"state"`
}

// TestResult is the verdict of a test-run job.
type TestResult struct {
	Status  SubmissionStatus `json:"status"`
	Answer  []string         `json:"answer"`
	Runtime string           `json:"runtime"`
	Errors  []string         `json:"errors"`
	Stdout  []string         `json:"stdout"`
}

// SubmissionResult is the verdict of a submitted job. The input and answer
// fields are set on failed verdicts, the percentiles on accepted ones.
type SubmissionResult struct {
	Status            SubmissionStatus `json:"status"`
	Lang              string           `json:"lang"`
	Runtime           string           `json:"runtime"`
	Memory            string           `json:"memory"`
	Errors            []string         `json:"errors"`
	Stdout            string           `json:"stdout"`
	DataInput         *string          `json:"data_input,omitempty"`
	ActualAnswer      *string          `json:"actual_answer,omitempty"`
	ExpectedAnswer    *string          `json:"expected_answer,omitempty"`
	RuntimePercentile *float64         `json:"runtime_percentile,omitempty"`
	MemoryPercentile  *float64         `json:"memory_percentile,omitempty"`
}
