package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrEngineUnavailable = errors.New("recognition engine unavailable")
	ErrRecognitionFailed = errors.New("recognition failed")
	ErrPersistenceFailed = errors.New("persistence failed")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
