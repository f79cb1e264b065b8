package errors

import (
	"errors"
)

var (
	ErrEmptyAuth    = errors.New("missing authorization")
	ErrEmptySubject = errors.New("missing subject")
	ErrTokenInvalid = errors.New("invalid token")
	ErrAdminOnly    = errors.New("admin role required")

	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrPaymentNotReady    = errors.New("payment step is not ready")
	ErrPaymentPending     = errors.New("payment authorization already obtained")
	ErrPaymentFailed      = errors.New("payment failed")
)
