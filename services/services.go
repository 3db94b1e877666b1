package services

import (
	"context"
	stderrors "errors"

	"github.com/rs/zerolog"

	"event-booking-api/database"
	"event-booking-api/errors"
	"event-booking-api/events"
)

var (
	ErrDuplicateEmail  = errors.New(errors.KindConflict, "email already registered")
	ErrUserNotFound    = errors.New(errors.KindNotFound, "user not found")
	ErrBadCredentials  = errors.New(errors.KindUnauthenticated, "invalid credentials")
	ErrInvalidRole     = errors.Validation("role must be one of: user, admin")
	ErrEventNotFound   = errors.New(errors.KindNotFound, "event not found")
	ErrAlreadyBooked   = errors.New(errors.KindConflict, "event already booked")
	ErrBookingNotFound = errors.New(errors.KindNotFound, "booking not found")
)

// storeError maps a repository miss onto notFound and wraps anything else as internal.
func storeError(err error, notFound *errors.Error, op string) error {
	if stderrors.Is(err, database.ErrNotFound) {
		return notFound
	}
	return errors.Internal(op, err)
}

// publish emits a domain event. A broker failure never fails the request.
func publish(ctx context.Context, p events.Publisher, log zerolog.Logger, key string, payload any) {
	if err := p.Publish(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("event", key).Msg("cannot publish domain event")
	}
}
