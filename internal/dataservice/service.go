// Package dataservice defines the remote data operations the boat components
// depend on and the structured error they fail with.
package dataservice

import (
	"context"
	"errors"
	"fmt"

	"boatyard/internal/domain"
)

// Service is the boat data service
type Service interface {
	// FetchBoats returns the boats matching filter; FilterAll returns every boat
	FetchBoats(ctx context.Context, filter domain.Filter) ([]domain.Boat, error)
	// FetchReviews returns the reviews of one boat, newest first
	FetchReviews(ctx context.Context, boatID string) ([]domain.Review, error)
	// UpdateBoats applies a batch of field changes atomically
	UpdateBoats(ctx context.Context, batch domain.UpdateBatch) error
	// FetchBoatTypes returns every boat type ordered by name
	FetchBoatTypes(ctx context.Context) ([]domain.BoatType, error)
	// CreateBoat stores a new boat and returns it with its id assigned
	CreateBoat(ctx context.Context, boat domain.Boat) (domain.Boat, error)
}

// ErrNotFound is wrapped by errors about missing records
var ErrNotFound = errors.New("record not found")

// Error is the structured failure of a data service call.
// Message is meant to be shown to the user as is.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns an Error for rejected input
func Validation(op, format string, args ...any) *Error {
	return &Error{Op: op, Message: fmt.Sprintf(format, args...)}
}

// AsError converts err into an *Error, keeping an existing one found in the chain
func AsError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var dsErr *Error
	if errors.As(err, &dsErr) {
		return dsErr
	}
	return &Error{Op: op, Message: err.Error(), Err: err}
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var dsErr *Error
	if errors.As(err, &dsErr) {
		return dsErr.Message
	}
	return err.Error()
}
