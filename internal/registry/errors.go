package registry

import "errors"

var (
	// ErrDuplicateName is returned when a type or function name is already bound.
	ErrDuplicateName = errors.New("name already registered")

	// ErrUnknownType is returned when a slot references a type name that has
	// not been registered.
	ErrUnknownType = errors.New("unknown value type")

	// ErrUnknownFunction is returned when a lookup references a function name
	// that has not been registered.
	ErrUnknownFunction = errors.New("unknown function")
)
