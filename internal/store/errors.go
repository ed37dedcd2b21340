package store

// duplicateError signals an observation_id that is already recorded, for 409
// mapping at the HTTP layer.
type duplicateError struct{ id string }

func (e duplicateError) Error() string { return "observation already recorded: " + e.id }

// ErrDuplicate constructs a duplicateError for the given observation id.
func ErrDuplicate(id string) error { return duplicateError{id: id} }

// IsDuplicate reports whether err indicates a duplicate observation id.
func IsDuplicate(err error) bool {
	_, ok := err.(duplicateError)
	return ok
}

// unavailableError signals that the backing database cannot be reached,
// for 503 mapping at the HTTP layer.
type unavailableError struct{ op string }

func (e unavailableError) Error() string { return e.op + ": database unavailable" }

// ErrUnavailable constructs an unavailableError for the named operation.
func ErrUnavailable(op string) error { return unavailableError{op: op} }

// IsUnavailable reports whether err indicates an unreachable database.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}

// notFoundError signals a missing observation_id, for 404 mapping.
type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "observation not found: " + e.id }

// ErrNotFound constructs a notFoundError for the given observation id.
func ErrNotFound(id string) error { return notFoundError{id: id} }

// IsNotFound reports whether err indicates a missing observation id.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}
