package document

import "errors"

var (
	// ErrUnknownField is returned when a document carries an attribute or
	// block this format does not define.
	ErrUnknownField = errors.New("unknown field")

	// ErrMalformedDocument is returned when a document is not valid HCL or
	// is structurally unusable: missing required attributes, non-dense
	// indices, or values of the wrong kind.
	ErrMalformedDocument = errors.New("malformed document")
)
