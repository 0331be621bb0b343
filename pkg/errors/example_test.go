package errors_test

import (
	"fmt"
	"io"

	apperrors "github.com/wanglun/leetcode.vim/pkg/errors"
)

func ExampleFailure() {
	err := apperrors.Failure(apperrors.ProblemFetchFailed, "get problem", "two-sum").WithCause(io.ErrUnexpectedEOF)

	fmt.Println(err)
	fmt.Println(apperrors.IsOperationFailure(err))
	fmt.Println(apperrors.GetCode(err).Retryable())
	// Output:
	// Could not get problem [two-sum]
	// true
	// false
}

func ExampleTooFast() {
	var err error = apperrors.TooFast("submit code", "two-sum")
	wrapped := fmt.Errorf("submit: %w", err)

	fmt.Println(err)
	fmt.Println(apperrors.IsTooFast(wrapped))
	fmt.Println(apperrors.GetCode(wrapped).Retryable())
	// Output:
	// Submitting too fast
	// true
	// true
}
