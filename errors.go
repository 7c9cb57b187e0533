package scopeiq

import (
	"errors"
	"fmt"
)

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

type shapeMismatch struct {
	message string
}

// NewShapeMismatch creates an error for chart series whose x and y
// sequences do not line up.
func NewShapeMismatch(msg string, v ...interface{}) error {
	return shapeMismatch{fmt.Sprintf("shape mismatch: %v", fmt.Sprintf(msg, v...))}
}

func (s shapeMismatch) Error() string {
	return s.message
}

// IsShapeMismatch checks if the given error is a shape mismatch error.
func IsShapeMismatch(err error) bool {
	var s shapeMismatch
	return errors.As(err, &s)
}

type rowShapeMismatch struct {
	row     int
	message string
}

// NewRowShapeMismatch creates an error for a table row whose length
// differs from the header row. row is the index of the offending row.
func NewRowShapeMismatch(row int, msg string, v ...interface{}) error {
	return rowShapeMismatch{row, fmt.Sprintf("row %d: %v", row, fmt.Sprintf(msg, v...))}
}

func (r rowShapeMismatch) Error() string {
	return r.message
}

// IsRowShapeMismatch checks if the given error is a row shape mismatch error.
func IsRowShapeMismatch(err error) bool {
	var r rowShapeMismatch
	return errors.As(err, &r)
}

// RowIndex returns the index of the offending row for a row shape
// mismatch error. The second return value is false for any other error.
func RowIndex(err error) (int, bool) {
	var r rowShapeMismatch
	if errors.As(err, &r) {
		return r.row, true
	}
	return 0, false
}

type invalidGeometry struct {
	message string
}

// NewInvalidGeometry creates an error for non-finite or non-positive
// diagram geometry.
func NewInvalidGeometry(msg string, v ...interface{}) error {
	return invalidGeometry{fmt.Sprintf("invalid geometry: %v", fmt.Sprintf(msg, v...))}
}

func (i invalidGeometry) Error() string {
	return i.message
}

// IsInvalidGeometry checks if the given error is an invalid geometry error.
func IsInvalidGeometry(err error) bool {
	var i invalidGeometry
	return errors.As(err, &i)
}

type validationError struct {
	message string
}

func (v validationError) Error() string {
	return v.message
}

// NewValidationError creates an error from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return validationError{fmt.Sprintf(msg, v...)}
}

// IsValidationError checks if the given error is a validation error.
func IsValidationError(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
