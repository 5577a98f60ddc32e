package errors

import (
	"errors"
	"fmt"
	"strings"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrNotFound         = errors.New("record not found")
	ErrForbidden        = errors.New("record does not belong to the current user")
	ErrInvalidDateRange = NewValidationError("end date must not be before start date")
	ErrInvalidCategory  = NewValidationError("unknown category")
)

// OverlapError reports which existing spending limits collide with a candidate
// date range.
type OverlapError struct {
	ConflictingIDs []int
}

func (e *OverlapError) Error() string {
	ids := make([]string, len(e.ConflictingIDs))
	for i, id := range e.ConflictingIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("date range overlaps existing spending limits: %s", strings.Join(ids, ", "))
}

func NewOverlapError(conflictingIDs []int) error {
	return &OverlapError{ConflictingIDs: conflictingIDs}
}

func IsOverlapError(err error) bool {
	var overlapError *OverlapError
	ok := errors.As(err, &overlapError)
	return ok
}
