// Package errs holds the typed failures the service layer surfaces.
// Handlers map them to HTTP statuses with errors.Is / errors.As instead of
// matching on message strings.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTransactionNotFound means no transaction matches the given id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotCompleted means an anti-fraud check was requested for a
	// transaction that is not COMPLETED.
	ErrNotCompleted = errors.New("transaction is not completed")
)

// DependencyError wraps a failed call to a collaborator service. Dependency
// names the collaborator ("account", "notification"); Cause is the
// underlying transport or protocol error.
type DependencyError struct {
	Dependency string
	Cause      error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s service call failed: %v", e.Dependency, e.Cause)
}

func (e *DependencyError) Unwrap() error {
	return e.Cause
}

// Dependency builds a DependencyError for the named collaborator.
func Dependency(dependency string, cause error) *DependencyError {
	return &DependencyError{Dependency: dependency, Cause: cause}
}
