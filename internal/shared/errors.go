package shared

import "errors"

var (
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
	// ErrSessionMissing occurs when a request carries no session.
	ErrSessionMissing = errors.New("session missing")
)
