package signal

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when a signal is read while nothing drives
	// it, either because it was never set or because it floats.
	ErrUnavailable = errors.New("signal unavailable")

	// ErrWidthMismatch is the sentinel wrapped by WidthMismatchError.
	ErrWidthMismatch = errors.New("signal width mismatch")
)

// WidthMismatchError reports a source bound to an input of another width.
type WidthMismatchError struct {
	Node     string
	Source   string
	Expected int
	Actual   int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf(
		"%s: signal %s has %d bits, expected %d",
		e.Node, e.Source, e.Actual, e.Expected)
}

// Unwrap returns ErrWidthMismatch.
func (e *WidthMismatchError) Unwrap() error {
	return ErrWidthMismatch
}

// CheckWidth returns a *WidthMismatchError if src does not carry exactly
// width bits. The node name is only used in the error message.
func CheckWidth(src Source, width int, node string) error {
	if src.Width() == width {
		return nil
	}

	return &WidthMismatchError{
		Node:     node,
		Source:   src.Name(),
		Expected: width,
		Actual:   src.Width(),
	}
}

func unavailable(name string) error {
	return fmt.Errorf("%s: %w", name, ErrUnavailable)
}
