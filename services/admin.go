package services

import (
	"context"

	"event-booking-api/database"
	"event-booking-api/errors"
	"event-booking-api/model"
)

type Admin struct {
	store *database.Store
}

func NewAdmin(store *database.Store) *Admin {
	return &Admin{store: store}
}

// Stats counts each collection separately; the three numbers are not a consistent snapshot.
func (a *Admin) Stats(ctx context.Context) (*model.Stats, error) {
	users, err := a.store.Users.Count(ctx)
	if err != nil {
		return nil, errors.Internal("cannot count users", err)
	}
	events, err := a.store.Events.Count(ctx)
	if err != nil {
		return nil, errors.Internal("cannot count events", err)
	}
	bookings, err := a.store.Bookings.Count(ctx)
	if err != nil {
		return nil, errors.Internal("cannot count bookings", err)
	}
	return &model.Stats{UsersCount: users, EventsCount: events, BookingsCount: bookings}, nil
}
