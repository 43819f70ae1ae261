package models

import "errors"

// Sentinel errors shared by the stores, the session facade and the HTTP layer.
var (
	ErrEmailTaken         = errors.New("delivery: email already registered")
	ErrInvalidCredentials = errors.New("delivery: invalid email or password")
	ErrInvalidRole        = errors.New("delivery: invalid role")
	ErrNotAuthenticated   = errors.New("delivery: no active session")

	// Raised by callers that pre-validate; the facade itself treats an
	// unknown order id as a no-op.
	ErrOrderNotFound = errors.New("delivery: order not found")
	ErrEmptyItemList = errors.New("delivery: at least one item is required")
)
