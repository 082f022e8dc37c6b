package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyUsed    = errors.New("already used")
	ErrExpired        = errors.New("expired")
	ErrIdentity       = errors.New("identity creation failed")
	ErrConfiguration  = errors.New("configuration invalid")
	ErrRoleAssignment = errors.New("role assignment failed")
	ErrDelivery       = errors.New("delivery failed")
	ErrDatastore      = errors.New("datastore error")
)
