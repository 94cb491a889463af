package protocol

import "errors"

var (
	// ErrMalformed reports a payload that is not a JSON object of the
	// expected shape.
	ErrMalformed = errors.New("malformed payload")
	// ErrUnknownKind reports a well-formed payload whose type discriminator
	// is missing or not accepted from clients.
	ErrUnknownKind = errors.New("unknown message type")
	// ErrInvalidName reports a display name that fails the name rule.
	ErrInvalidName = errors.New("invalid display name")
)
