// Package repository defines sentinel errors shared across the data
// access layer.  Handlers translate these into HTTP status codes; the
// booking service relies on them to distinguish a lost seat race from a
// transient storage failure.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Handlers should translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers should translate it into 403.
var ErrForbidden = errors.New("forbidden")

// ErrFlightNotBookable is returned when a flight is missing, not in
// AVAILABLE status, or advertises fewer open seats than requested at
// read time.  No side effects have occurred when it is returned.
var ErrFlightNotBookable = errors.New("flight not bookable")

// ErrInsufficientSeats is returned when the conditional seat decrement
// matched zero rows, i.e. a concurrent booking won the race after the
// availability read.  The surrounding transaction has been rolled back
// in full; callers should re-check availability rather than blindly
// retrying the same request.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrAlreadyCancelled is returned when a cancellation targets a booking
// that is not in CONFIRMED status.  The guard makes the seat restore
// exactly-once: a second cancel can never credit seats back twice.
var ErrAlreadyCancelled = errors.New("booking already cancelled")
