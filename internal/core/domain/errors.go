package domain

import "errors"

// Sentinel errors for the whole core. Services return these (optionally
// wrapped); the HTTP error handler maps them to status codes in one place.
var (
	// ErrUnauthenticated covers missing, malformed, expired or otherwise
	// unverifiable credentials.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrForbidden is a policy denial for an authenticated actor.
	ErrForbidden = errors.New("not enough permissions")

	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrPostNotFound         = errors.New("blog post not found")
	ErrImageNotFound        = errors.New("gallery image not found")

	// ErrUserExists signals the email-uniqueness constraint fired on insert.
	ErrUserExists = errors.New("user already exists")

	// ErrAlreadyRegistered signals the (event, user) uniqueness constraint.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrTicketNotReady means the background worker has not produced the QR
	// ticket for a registration yet.
	ErrTicketNotReady = errors.New("ticket not ready")

	// ErrInvalidVerificationCode is a wrong, expired or replayed
	// verification code.
	ErrInvalidVerificationCode = errors.New("invalid verification code")

	// ErrUnknownProvider is returned for a social-login provider we are not
	// configured for.
	ErrUnknownProvider = errors.New("unknown authentication provider")

	// ErrInvalidState is a social-login callback whose state nonce is
	// missing, expired or replayed.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrDependencyFailure covers the blob store or identity provider being
	// unreachable or rejecting a call. Details are logged, never returned.
	ErrDependencyFailure = errors.New("upstream dependency failure")
)
