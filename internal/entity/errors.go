package entity

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrAcquiring         = errors.New("acquiring api error")
	ErrRejected          = errors.New("payment rejected")
	ErrTimeout           = errors.New("time or retries count is over")
	ErrCancelled         = errors.New("cancelled")
	ErrDismissNotAllowed = errors.New("dismiss is not allowed while payment is processing")
	ErrMethodUnavailable = errors.New("pay method unavailable")
)

// TimeoutError is returned when polling ran out of retries. Err is the last status request error, if any.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return ErrTimeout.Error()
	}

	return ErrTimeout.Error() + "; underlying error: " + e.Err.Error()
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
