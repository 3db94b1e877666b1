package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/database"
	"event-booking-api/errors"
	"event-booking-api/events"
	"event-booking-api/model"
)

type Payments struct {
	bookings  database.BookingRepository
	events    database.EventRepository
	payments  database.PaymentRepository
	publisher events.Publisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewPayments(store *database.Store, publisher events.Publisher, log zerolog.Logger) *Payments {
	return &Payments{
		bookings:  store.Bookings,
		events:    store.Events,
		payments:  store.Payments,
		publisher: publisher,
		log:       log.With().Str("component", "payments").Logger(),
		now:       time.Now,
	}
}

// Pay records a successful payment for the caller's booking. The amount is the event price
// at the moment of payment; later price changes do not touch stored payments. Repeated
// calls record repeated payments.
func (p *Payments) Pay(ctx context.Context, userID, bookingID primitive.ObjectID) (*model.Payment, error) {
	booking, err := p.bookings.GetOwned(ctx, bookingID, userID)
	if err != nil {
		return nil, storeError(err, ErrBookingNotFound, "cannot read booking")
	}
	event, err := p.events.GetByID(ctx, booking.Event)
	if err != nil {
		return nil, storeError(err, ErrEventNotFound, "cannot read event")
	}

	payment := &model.Payment{
		User:      userID,
		Booking:   booking.Id,
		Amount:    event.Price,
		Status:    model.PaymentSuccess,
		CreatedAt: p.now().UTC(),
	}
	if err := p.payments.Create(ctx, payment); err != nil {
		return nil, errors.Internal("cannot record payment", err)
	}

	publish(ctx, p.publisher, p.log, events.PaymentSucceeded, events.PaymentPayload{
		PaymentID: payment.Id.Hex(),
		BookingID: booking.Id.Hex(),
		UserID:    userID.Hex(),
		Amount:    payment.Amount,
		At:        payment.CreatedAt,
	})
	return payment, nil
}

func (p *Payments) ForBooking(ctx context.Context, userID, bookingID primitive.ObjectID) ([]model.Payment, error) {
	if _, err := p.bookings.GetOwned(ctx, bookingID, userID); err != nil {
		return nil, storeError(err, ErrBookingNotFound, "cannot read booking")
	}
	payments, err := p.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, errors.Internal("cannot list payments", err)
	}
	return payments, nil
}
