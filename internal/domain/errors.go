package domain

import "errors"

// Sentinel errors for domain-level error discrimination. Services wrap these
// with %w so handlers can map failures to HTTP status codes without leaking
// store or gateway details to the client.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidCode covers both a wrong candidate and an expired or absent
	// record. The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCode = errors.New("invalid or expired code")
)
