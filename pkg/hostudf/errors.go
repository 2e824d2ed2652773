package hostudf

import (
	"errors"
	"fmt"
)

// The three failure classes. All of them surface synchronously during
// validation, before anything is submitted to a stream.
var (
	ErrConfiguration   = errors.New("configuration error")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTypeMismatch    = errors.New("type mismatch")
)

func configErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func unsupportedErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedType, fmt.Sprintf(format, args...))
}

func mismatchErrf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTypeMismatch, fmt.Sprintf(format, args...))
}
