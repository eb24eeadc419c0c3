// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Feed and session domain errors.
var (
	// ErrFeedUnavailable is returned when a snapshot could not be loaded or delivered.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrSessionClosed is returned when reading from a session after logout.
	ErrSessionClosed = errors.New("session closed")

	// ErrSnapshotNotReady is returned when no snapshot arrived within the wait bound.
	ErrSnapshotNotReady = errors.New("snapshot not ready")
)

// FeedErrorCode defines error codes for feed and session errors.
// Format: FEED-XXYYYY where XX is category and YYYY is specific error.
type FeedErrorCode string

const (
	// Delivery errors (01XXXX)
	ErrCodeFeedSubscribe FeedErrorCode = "FEED-010001"
	ErrCodeFeedLoad      FeedErrorCode = "FEED-010002"

	// Session errors (02XXXX)
	ErrCodeSessionClosed    FeedErrorCode = "FEED-020001"
	ErrCodeSnapshotNotReady FeedErrorCode = "FEED-020002"
)

// FeedError represents a feed error with code, collection and message.
type FeedError struct {
	Code       FeedErrorCode
	Collection string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	msg := e.Message
	if e.Collection != "" {
		msg = e.Collection + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new FeedError for the given collection.
func NewFeedError(code FeedErrorCode, collection, message string, err error) *FeedError {
	return &FeedError{
		Code:       code,
		Collection: collection,
		Message:    message,
		Err:        err,
	}
}
