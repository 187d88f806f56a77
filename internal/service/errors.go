package service

import "errors"

var (
	// ErrInvalidInput is returned for empty or malformed queries. It is the caller's fault and not worth retrying.
	ErrInvalidInput = errors.New("service: invalid input")

	// ErrResolutionFailed matches any *ResolutionError.
	ErrResolutionFailed = errors.New("service: resolution failed")
)

// ResolutionError reports an unexpected failure in the primary lookup path, keeping the original cause.
type ResolutionError struct {
	Cause error
}

func (e *ResolutionError) Error() string {
	return ErrResolutionFailed.Error() + ": " + e.Cause.Error()
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrResolutionFailed) hold for every ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolutionFailed
}
