/*
errors.go - Centralized error types for the application state layer

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  Store implementations and the controller both report failures with
  these; callers dispatch with errors.Is().

ERROR CATEGORIES:
  1. NotFound      - update referencing an absent id or stock number
                     (delete of an absent id is a silent no-op instead)
  2. DuplicateID   - add with an id already present; fail fast, the
                     collection is left unchanged
  3. Validation    - required field missing/malformed at the boundary;
                     no partial record is persisted
  4. Authorization - the current user lacks the required capability

  Storage failures are wrapped driver errors (%w); they never reach the
  in-memory cache, which reflects confirmed writes only.

SEE ALSO:
  - controller.go: Enforces the taxonomy on every mutation
  - store/sqlite/sqlite.go: Maps SQLite constraint errors to these
*/
package appstate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update references an id or stock
	// number that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when an add is called with an id that
	// is already present in the collection.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrPermissionDenied is returned when the current user lacks the
	// capability required by a mutation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrVehicleSold is returned when deleting a vehicle that has
	// already been sold.
	ErrVehicleSold = errors.New("vehicle already sold")

	// ErrNoCurrentUser is returned when a permission-guarded mutation
	// is attempted with no user selected.
	ErrNoCurrentUser = errors.New("no current user selected")

	// ErrValidation is the sentinel all ValidationErrors unwrap to.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a required field that is missing or
// malformed. No partial record is persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// invalidField is a shorthand constructor used by the controller.
func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
