package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile      = errors.New("csv: empty file")
	ErrMissingMapping = errors.New("latitude and longitude columns are required")
	ErrColumnNotFound = errors.New("mapped coordinate column not found in file")
	ErrNotNumeric     = errors.New("value is not a number")
)

// ValidationError reports input the editor refuses to accept: a bad column
// mapping at import time or an unparsable numeric edit.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func validation(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Msg: err.Error(), Err: err}
}
