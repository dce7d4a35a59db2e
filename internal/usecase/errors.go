package usecase

import "errors"

// Error taxonomy surfaced to the transport layer. Handlers map these with
// errors.Is; anything unrecognized is treated as a storage/upstream failure
// and surfaced as a generic internal error.
var (
	ErrValidation        = errors.New("invalid input")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
)
