package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/model"
)

func TestPayCopiesPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.signup(t, "Alice", "a@x.com")
	event := f.event(t, "Concert", 500, time.Now())

	booking, err := f.ledger.Book(ctx, user.Id, event.Id)
	require.NoError(t, err)

	payment, err := f.payments.Pay(ctx, user.Id, booking.Id)
	require.NoError(t, err)
	assert.Equal(t, 500.0, payment.Amount)
	assert.Equal(t, model.PaymentSuccess, payment.Status)
	assert.Equal(t, booking.Id, payment.Booking)

	price := 750.0
	_, err = f.catalog.Update(ctx, event.Id, model.EventUpdate{Price: &price})
	require.NoError(t, err)

	stored, err := f.payments.ForBooking(ctx, user.Id, booking.Id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 500.0, stored[0].Amount, "stored payment keeps the price it was made at")

	second, err := f.payments.Pay(ctx, user.Id, booking.Id)
	require.NoError(t, err)
	assert.Equal(t, 750.0, second.Amount)
}

func TestPayForeignOrMissingBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "Alice", "a@x.com")
	bob := f.signup(t, "Bob", "b@x.com")
	event := f.event(t, "Concert", 500, time.Now())

	booking, err := f.ledger.Book(ctx, alice.Id, event.Id)
	require.NoError(t, err)

	_, err = f.payments.Pay(ctx, bob.Id, booking.Id)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.payments.Pay(ctx, alice.Id, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	require.NoError(t, f.catalog.Delete(ctx, event.Id))
	_, err = f.payments.Pay(ctx, alice.Id, booking.Id)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.signup(t, "Alice", "a@x.com")
	f.signup(t, "Bob", "b@x.com")
	event := f.event(t, "Concert", 500, time.Now())
	f.event(t, "Talk", 0, time.Now())
	f.event(t, "Film", 8, time.Now())

	_, err := f.ledger.Book(ctx, user.Id, event.Id)
	require.NoError(t, err)

	stats, err := f.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.Stats{UsersCount: 2, EventsCount: 3, BookingsCount: 1}, stats)
}
