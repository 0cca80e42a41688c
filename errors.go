package pipette

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySequence is returned by Reduce when there is no initial value
	// and the sequence yields no elements.
	ErrEmptySequence = errors.New("pipette: reduce of empty sequence with no initial value")

	// ErrArgumentMismatch is reported when a Stage is applied with bound
	// arguments its underlying function cannot accept.
	ErrArgumentMismatch = errors.New("pipette: argument mismatch")
)

// StageError describes a failure raised while applying a Stage.
type StageError struct {
	// Stage is the diagnostic name of the failing stage.
	Stage  string
	Reason error
}

func (e StageError) Error() string {
	return fmt.Sprintf("stage %s: %s", e.Stage, e.Reason)
}

func (e StageError) Unwrap() error {
	return e.Reason
}

func mismatchf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrArgumentMismatch, fmt.Sprintf(format, args...))
}
