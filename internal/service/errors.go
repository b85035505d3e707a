package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks user input the workflow cannot proceed with. Validation
// failures are raised before any remote write and never reach the store.
var ErrValidation = errors.New("validation failed")

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// PersistenceError reports a failed remote write after validation passed.
// The operation is treated as not committed, but earlier steps of a
// multi-write workflow are not rolled back; the worst case is an inconsistent
// cache requiring a reload.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
