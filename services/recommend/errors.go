package recommend

import (
	"errors"
	"fmt"
)

// Error codes for ranking failures. A user who never saved preferences is
// not in this taxonomy: that case yields an empty list, not an error.
const (
	CodeTimeout            = "timeout"
	CodeServerError        = "serverError"
	CodeNetworkUnreachable = "networkUnreachable"
	CodeMalformedRequest   = "malformedRequest"
)

// RankingError categorizes a failed remote ranking call so callers can pick
// a user-facing message without string matching.
type RankingError struct {
	Code    string
	Status  int
	Message string
}

func (e *RankingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newTimeoutError(userID, filter string) error {
	return &RankingError{
		Code:    CodeTimeout,
		Message: fmt.Sprintf("ranking request for user %s (filter %q) exceeded its budget", userID, filter),
	}
}

func newServerError(status int, detail string) error {
	msg := fmt.Sprintf("ranking backend returned status %d", status)
	if detail != "" {
		msg += ": " + detail
	}
	return &RankingError{Code: CodeServerError, Status: status, Message: msg}
}

func newNetworkError(err error) error {
	return &RankingError{
		Code:    CodeNetworkUnreachable,
		Message: fmt.Sprintf("ranking backend unreachable (check that it is running and the network is up): %v", err),
	}
}

func newMalformedRequestError(err error) error {
	return &RankingError{
		Code:    CodeMalformedRequest,
		Message: fmt.Sprintf("failed to build ranking request: %v", err),
	}
}

// ErrorCode extracts the taxonomy code from err, or empty for other errors.
func ErrorCode(err error) string {
	var rankErr *RankingError
	if errors.As(err, &rankErr) {
		return rankErr.Code
	}
	return ""
}
