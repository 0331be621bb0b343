package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 11000-11099: Session errors
// 12000-12999: Problem operation errors
// 13000-13999: Submission & Judge operation errors
// 14000-14099: Problem list cache errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001

	// Payload errors (10300-10399)
	InvalidFormat ErrorCode = 10301

	// ========== Session Errors (11000-11099) ==========
	NotAuthenticated     ErrorCode = 11000
	LoginPageUnavailable ErrorCode = 11001
	LoginFailed          ErrorCode = 11002

	// ========== Problem Errors (12000-12999) ==========
	ProblemListFailed  ErrorCode = 12000
	ProblemFetchFailed ErrorCode = 12001

	// ========== Submission & Judge Errors (13000-13999) ==========

	// Submission queries (13000-13099)
	SubmissionListFailed  ErrorCode = 13000
	SubmissionFetchFailed ErrorCode = 13001

	// Judge jobs (13100-13199)
	TestCodeFailed       ErrorCode = 13100
	SubmitCodeFailed     ErrorCode = 13101
	SubmitTooFast        ErrorCode = 13102
	ResultRetrieveFailed ErrorCode = 13103
	PollTimeout          ErrorCode = 13104

	// ========== Cache Errors (14000-14099) ==========
	CacheError   ErrorCode = 14000
	CacheExpired ErrorCode = 14001
)

// errorMessages maps error codes to default messages
var errorMessages = map[ErrorCode]string{
	Success:             "Success",
	InternalServerError: "Internal server error",

	InvalidFormat: "Invalid format",

	NotAuthenticated:     "Not logged in",
	LoginPageUnavailable: "Could not get login page",
	LoginFailed:          "Username or password not correct",

	ProblemListFailed:  "Could not get problem list",
	ProblemFetchFailed: "Could not get problem",

	SubmissionListFailed:  "Could not get submission list of",
	SubmissionFetchFailed: "Could not get submission",

	TestCodeFailed:       "Could not test the code",
	SubmitCodeFailed:     "Could not submit the code",
	SubmitTooFast:        "Submitting too fast",
	ResultRetrieveFailed: "Could not retrieve result of submission",
	PollTimeout:          "Result not ready after max retries",

	CacheError:   "Problem list cache operation failed",
	CacheExpired: "Problem list cache expired",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// IsOperationFailure reports whether the code belongs to a judge operation.
// SubmitTooFast is included: it is a distinguished kind of operation failure.
func (c ErrorCode) IsOperationFailure() bool {
	return c >= 12000 && c < 14000
}

// Retryable reports whether the caller may retry the same request later.
func (c ErrorCode) Retryable() bool {
	switch c {
	case SubmitTooFast, PollTimeout:
		return true
	default:
		return false
	}
}
