package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/synthflow/internal/types"
)

var (
	// ErrValidation marks input that is missing or invalid.
	ErrValidation = errors.New("validation failed")
	// ErrPrecondition marks an operation invoked before the state it needs exists.
	ErrPrecondition = types.ErrPrecondition
)

// ValidationError describes one invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// PreconditionError reports which operation was refused and why.
type PreconditionError struct {
	Op      string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Op, e.Message)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
