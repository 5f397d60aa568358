// File: store/errors.go
package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the stores. Callers branch on these to map
// expected business outcomes (duplicate email, full challenge) away from
// genuine store failures.
var (
	ErrNotFound        = errors.New("not found")
	ErrChallengeClosed = errors.New("challenge is not accepting registrations")
	ErrNoCapacity      = errors.New("no remaining capacity")
	ErrNotWaitlisted   = errors.New("registration is not on the waitlist")
	ErrSlotUnavailable = errors.New("slot is closed or already booked")
)

// AlreadyRegisteredError reports a duplicate registration attempt and
// carries the existing row's id and status so the caller can tell the
// registrant which state they are in.
type AlreadyRegisteredError struct {
	ID     string
	Status string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("email already registered (status=%s)", e.Status)
}
