package claims

import "errors"

// Service errors. Handlers map these to HTTP statuses; anything else is a
// transient backend failure.
var (
	// ErrUnauthenticated is returned when an operation requiring an
	// identity is called without one.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrEmptyAnswer is returned when a claim answer is empty after
	// trimming whitespace. Validation happens before any store access.
	ErrEmptyAnswer = errors.New("answer must not be empty")

	// ErrInvalidDecision is returned for a moderation action other than
	// approve or reject.
	ErrInvalidDecision = errors.New("decision must be approve or reject")

	// ErrItemNotFound is returned when the referenced item does not exist
	// or has been removed.
	ErrItemNotFound = errors.New("item not found")

	// ErrClaimNotFound is returned when the referenced claim does not exist.
	ErrClaimNotFound = errors.New("claim not found")

	// ErrNotOwner is returned when someone other than the item's poster
	// tries to view or moderate its claims.
	ErrNotOwner = errors.New("only the item's poster may do this")

	// ErrAlreadyDecided is returned when deciding a claim that is already
	// terminal. The stored status is never overwritten.
	ErrAlreadyDecided = errors.New("claim already decided")
)
