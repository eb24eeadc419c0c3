// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidReferenceDate is returned when the reference date is not YYYY-MM-DD.
	ErrInvalidReferenceDate = errors.New("invalid reference date, expected YYYY-MM-DD")

	// ErrTooManyRecords is returned when a compute batch exceeds the accepted size.
	ErrTooManyRecords = errors.New("too many records in batch")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReferenceDate DashboardErrorCode = "DSH-010001"
	ErrCodeTooManyRecords       DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidBatch         DashboardErrorCode = "DSH-010003"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
