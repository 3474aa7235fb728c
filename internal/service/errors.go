package service

import (
	"errors"
	"fmt"

	"github.com/timtruong/timtruong-backend/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUniversityNotFound = errors.New("university not found")
	ErrMajorNotFound      = errors.New("major not found")
	// ErrCombinationMismatch rejects THPTQG requirements without a subject
	// combination and ĐGNL requirements with one.
	ErrCombinationMismatch = errors.New("subject combination does not match exam type")
	ErrScoreOutOfRange     = errors.New("score outside the exam scale")
	ErrYearOutOfRange      = errors.New("admission year out of range")
	ErrInvalidWorkbook     = errors.New("file is not a readable .xlsx workbook")
)

// ConflictError reports a uniqueness rule broken by a write, keyed by the
// request field at fault.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func conflict(field, format string, args ...interface{}) error {
	return &ConflictError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// mapNotFound swaps repository.ErrNotFound for the service-level sentinel.
func mapNotFound(err error, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
