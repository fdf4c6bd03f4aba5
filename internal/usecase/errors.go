package usecase

import (
	"errors"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// deleteError maps a storage-level restrict violation to ErrConflict. The
// count checks before each delete can race with a concurrent insert.
func deleteError(op string, err error) error {
	if errors.Is(err, domain.ErrStillReferenced) {
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
