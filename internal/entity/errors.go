package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// Registration errors
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("registration already exists for this user and event")
	ErrMalformedCode         = errors.New("malformed attendance code")
	ErrUnknownRegistration   = errors.New("no registration matches the scanned code")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// General errors
	ErrAccessDenied = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized access")
)
