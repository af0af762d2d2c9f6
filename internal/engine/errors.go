package engine

import (
	"errors"
	"fmt"

	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// Error taxonomy surfaced to callers. Handlers map these onto HTTP statuses;
// the engine never maps them itself.
var (
	// ErrNotFound: a referenced user, blog or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: a visibility or ownership check failed.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict: the requested state transition contradicts current state.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated: a mutating operation was attempted with no viewer.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrStorage wraps failures of the storage collaborators. The engine
	// performs no retries.
	ErrStorage = errors.New("storage failure")
)

// storageErr wraps a repository failure, translating the repositories'
// not-found sentinel into the engine's own.
func storageErr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
