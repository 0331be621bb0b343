package errors_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/wanglun/leetcode.vim/pkg/errors"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{Success, "Success"},
		{NotAuthenticated, "Not logged in"},
		{SubmitTooFast, "Submitting too fast"},
		{LoginFailed, "Username or password not correct"},
		{ErrorCode(99999), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode_IsOperationFailure(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ProblemListFailed, true},
		{ProblemFetchFailed, true},
		{SubmissionListFailed, true},
		{TestCodeFailed, true},
		{SubmitTooFast, true},
		{ResultRetrieveFailed, true},
		{NotAuthenticated, false},
		{CacheError, false},
		{InvalidFormat, false},
	}

	for _, tt := range tests {
		t.Run(tt.code.Message(), func(t *testing.T) {
			if got := tt.code.IsOperationFailure(); got != tt.want {
				t.Errorf("IsOperationFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailure(t *testing.T) {
	err := Failure(ProblemFetchFailed, "get_problem", "two-sum")

	if err.Code != ProblemFetchFailed {
		t.Errorf("Code = %v, want %v", err.Code, ProblemFetchFailed)
	}
	if err.Error() != "Could not get problem [two-sum]" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Details["operation"] != "get_problem" || err.Details["subject"] != "two-sum" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestFailure_NoSubject(t *testing.T) {
	err := Failure(ProblemListFailed, "list_problems", "")
	if err.Error() != "Could not get problem list" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTooFast(t *testing.T) {
	err := TooFast("submit_code", "two-sum")

	if !IsTooFast(err) {
		t.Error("IsTooFast() should be true")
	}
	if !IsOperationFailure(err) {
		t.Error("TooFast should also be an operation failure")
	}
	if !err.Code.Retryable() {
		t.Error("TooFast should be retryable")
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("connection refused")
	wrappedErr := Wrap(originalErr, CacheError)

	if wrappedErr.Code != CacheError {
		t.Errorf("Code = %v, want %v", wrappedErr.Code, CacheError)
	}

	if wrappedErr.Unwrap() != originalErr {
		t.Error("Unwrap() should return original error")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "custom error",
			err:  New(NotAuthenticated),
			want: NotAuthenticated,
		},
		{
			name: "wrapped custom error",
			err:  fmt.Errorf("login: %w", New(LoginFailed)),
			want: LoginFailed,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := NotAuthenticatedError()

	if !Is(err, NotAuthenticated) {
		t.Error("Is() should return true for matching code")
	}
	if !IsNotAuthenticated(fmt.Errorf("poll: %w", err)) {
		t.Error("IsNotAuthenticated() should see through wrapping")
	}
	if Is(err, CacheError) {
		t.Error("Is() should return false for non-matching code")
	}
	if Is(nil, NotAuthenticated) {
		t.Error("Is() should return false for nil error")
	}
	if IsOperationFailure(err) {
		t.Error("NotAuthenticated is not an operation failure")
	}
}

func TestErrorCode_Retryable(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{SubmitTooFast, true},
		{PollTimeout, true},
		{SubmitCodeFailed, false},
		{NotAuthenticated, false},
		{CacheExpired, false},
		{InvalidFormat, false},
	}
	for _, tt := range tests {
		if got := tt.code.Retryable(); got != tt.want {
			t.Errorf("%d.Retryable() = %v, want %v", tt.code, got, tt.want)
		}
	}
}
