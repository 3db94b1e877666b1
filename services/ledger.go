package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/database"
	"event-booking-api/errors"
	"event-booking-api/events"
	"event-booking-api/model"
)

// Ledger records which user holds a booking for which event, at most one per pair.
type Ledger struct {
	bookings  database.BookingRepository
	events    database.EventRepository
	users     database.UserRepository
	publisher events.Publisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewLedger(store *database.Store, publisher events.Publisher, log zerolog.Logger) *Ledger {
	return &Ledger{
		bookings:  store.Bookings,
		events:    store.Events,
		users:     store.Users,
		publisher: publisher,
		log:       log.With().Str("component", "ledger").Logger(),
		now:       time.Now,
	}
}

// Book creates the booking. The unique (user, event) index decides duplicates, so two
// concurrent requests for the same pair yield exactly one booking.
func (l *Ledger) Book(ctx context.Context, userID, eventID primitive.ObjectID) (*model.Booking, error) {
	if _, err := l.events.GetByID(ctx, eventID); err != nil {
		return nil, storeError(err, ErrEventNotFound, "cannot read event")
	}

	booking := &model.Booking{User: userID, Event: eventID, CreatedAt: l.now().UTC()}
	if err := l.bookings.Create(ctx, booking); err != nil {
		if stderrors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, errors.Internal("cannot create booking", err)
	}

	publish(ctx, l.publisher, l.log, events.BookingCreated, events.BookingPayload{
		BookingID: booking.Id.Hex(),
		UserID:    userID.Hex(),
		EventID:   eventID.Hex(),
		At:        booking.CreatedAt,
	})
	return booking, nil
}

func (l *Ledger) List(ctx context.Context, userID primitive.ObjectID) ([]model.BookingDetails, error) {
	bookings, err := l.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("cannot list bookings", err)
	}

	ids := make([]primitive.ObjectID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.Event)
	}
	eventsByID, err := l.events.GetMany(ctx, ids)
	if err != nil {
		return nil, errors.Internal("cannot read events", err)
	}

	owner := model.UserSummary{Id: userID}
	if user, err := l.users.GetByID(ctx, userID); err == nil {
		owner = model.UserSummary{Id: user.Id, Name: user.Name, Email: user.Email}
	} else if !stderrors.Is(err, database.ErrNotFound) {
		return nil, errors.Internal("cannot read user", err)
	}

	details := make([]model.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		d := model.BookingDetails{Id: b.Id, User: owner, CreatedAt: b.CreatedAt}
		if event, ok := eventsByID[b.Event]; ok {
			d.Event = &event
		}
		details = append(details, d)
	}
	return details, nil
}

// Cancel deletes the caller's booking. A booking owned by someone else is reported as not
// found.
func (l *Ledger) Cancel(ctx context.Context, userID, bookingID primitive.ObjectID) error {
	if err := l.bookings.DeleteOwned(ctx, bookingID, userID); err != nil {
		return storeError(err, ErrBookingNotFound, "cannot cancel booking")
	}

	publish(ctx, l.publisher, l.log, events.BookingCancelled, events.BookingPayload{
		BookingID: bookingID.Hex(),
		UserID:    userID.Hex(),
		At:        l.now().UTC(),
	})
	return nil
}
