package episode

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidNumericField = errors.New("invalid numeric field")
	ErrInternalLoop        = errors.New("internal error: episode chain walk revisited an episode")
)

// MissingFieldError reports a required field absent from a row.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s %q", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// InvalidNumericFieldError reports a numeric field holding non-integer text.
type InvalidNumericFieldError struct {
	Field string
	Value string
}

func (e *InvalidNumericFieldError) Error() string {
	return fmt.Sprintf("%s %q: %q is not an integer", ErrInvalidNumericField, e.Field, e.Value)
}

func (e *InvalidNumericFieldError) Unwrap() error { return ErrInvalidNumericField }

// LoopError is raised when walking the chain revisits an episode. The
// validation preceding the walk rules this out, so seeing it means a defect in
// this package rather than bad data.
type LoopError struct {
	Head    string
	Revisit string
	Steps   int
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("%s: %s reached again after %d steps from %s", ErrInternalLoop, e.Revisit, e.Steps, e.Head)
}

func (e *LoopError) Unwrap() error { return ErrInternalLoop }
