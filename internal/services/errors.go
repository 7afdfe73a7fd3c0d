package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every service failure wraps exactly one of these so handlers
// can map it to an HTTP status without parsing messages.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrIntegrity  = errors.New("integrity violation")
)

// ErrInvalidInterval marks a clock pair whose out time precedes its in time.
// It is a validation error for classification purposes.
var ErrInvalidInterval = fmt.Errorf("%w: out time precedes in time", ErrValidation)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// translateNotFound rewrites a gorm record-not-found error into the NotFound
// kind with a message naming the entity; other errors pass through untouched.
func translateNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErrorf("%s not found", entity)
	}
	return err
}
