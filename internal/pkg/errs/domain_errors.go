package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceInactive = errors.New("resource is inactive")
	ErrResourceTooSmall = errors.New("resource capacity below requested")

	// Booking request errors
	ErrRequestNotFound       = errors.New("booking request not found")
	ErrRequestFinalized      = errors.New("request already finalized")
	ErrRequestNotCancellable = errors.New("request can no longer be cancelled")
	ErrNotRequestOwner       = errors.New("not the request owner")
	ErrResourceConflict      = errors.New("resource already booked for this window")
	ErrNoResourceAvailable   = errors.New("no resource available")

	// Validation errors
	ErrInvalidTimeWindow   = errors.New("invalid time window")
	ErrInvalidCapacity     = errors.New("capacity must be positive")
	ErrInvalidResourceKind = errors.New("unknown resource kind")
	ErrInvalidRequestKind  = errors.New("unknown request kind")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
