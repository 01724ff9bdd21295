package models

import "github.com/pkg/errors"

// Failure taxonomy shared by the query client, the favorites store and the
// session controller. Callers match with errors.Is; wrapping preserves the
// underlying cause for logs.
var (
	// ErrTransport means the generative backend was unreachable or answered
	// with a non-OK status.
	ErrTransport = errors.New("backend transport failure")

	// ErrMalformedResponse means the backend answered but the payload did not
	// parse as JSON or violated the requested schema.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrPersist means the favorites value could not be written to storage.
	ErrPersist = errors.New("favorites persistence failure")

	// ErrConfirmationRequired is returned when a favorite removal arrives
	// without the explicit confirmation flag.
	ErrConfirmationRequired = errors.New("removal requires confirmation")
)
