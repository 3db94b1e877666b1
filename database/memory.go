package database

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"event-booking-api/model"
)

// memoryDB keeps every collection in process memory behind one lock. It enforces the same
// unique constraints as the Mongo indexes: user email and (user, event) per booking.
type memoryDB struct {
	mu       sync.RWMutex
	users    []model.UserData
	events   []model.Event
	bookings []model.Booking
	payments []model.Payment
}

// NewMemoryStore returns a Store backed by process memory. Data is lost on restart.
func NewMemoryStore() *Store {
	db := &memoryDB{}
	return &Store{
		Users:    &memoryUsers{db: db},
		Events:   &memoryEvents{db: db},
		Bookings: &memoryBookings{db: db},
		Payments: &memoryPayments{db: db},
		ping:     func(context.Context) error { return nil },
		close:    func(context.Context) error { return nil },
	}
}

type memoryUsers struct{ db *memoryDB }

func (r *memoryUsers) Create(_ context.Context, user *model.UserData) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	r.db.users = append(r.db.users, *user)
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id primitive.ObjectID) (*model.UserData, error) {
	return r.find(func(u model.UserData) bool { return u.Id == id })
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*model.UserData, error) {
	return r.find(func(u model.UserData) bool { return u.Email == email })
}

func (r *memoryUsers) find(match func(model.UserData) bool) (*model.UserData, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) List(context.Context) ([]model.UserData, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return append([]model.UserData{}, r.db.users...), nil
}

func (r *memoryUsers) Update(_ context.Context, id primitive.ObjectID, update model.UserUpdate) (*model.UserData, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.users {
		u := &r.db.users[i]
		if u.Id != id {
			continue
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.HashedPassword != nil {
			u.HashedPassword = *update.HashedPassword
		}
		if update.Role != nil {
			u.Role = *update.Role
		}
		u.UpdatedAt = time.Now().UTC()
		updated := *u
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, u := range r.db.users {
		if u.Id == id {
			r.db.users = append(r.db.users[:i], r.db.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryUsers) Count(context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return int64(len(r.db.users)), nil
}

type memoryEvents struct{ db *memoryDB }

func (r *memoryEvents) Create(_ context.Context, event *model.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if event.Id.IsZero() {
		event.Id = primitive.NewObjectID()
	}
	r.db.events = append(r.db.events, *event)
	return nil
}

func (r *memoryEvents) GetByID(_ context.Context, id primitive.ObjectID) (*model.Event, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, e := range r.db.events {
		if e.Id == id {
			found := e
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryEvents) GetMany(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Event, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	found := make(map[primitive.ObjectID]model.Event, len(ids))
	for _, e := range r.db.events {
		if _, ok := wanted[e.Id]; ok {
			found[e.Id] = e
		}
	}
	return found, nil
}

func (r *memoryEvents) List(context.Context) ([]model.Event, error) {
	r.db.mu.RLock()
	events := append([]model.Event{}, r.db.events...)
	r.db.mu.RUnlock()

	// same order as the mongo listing: date, then _id
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return bytes.Compare(events[i].Id[:], events[j].Id[:]) < 0
	})
	return events, nil
}

func (r *memoryEvents) Update(_ context.Context, id primitive.ObjectID, update model.EventUpdate) (*model.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.events {
		if r.db.events[i].Id != id {
			continue
		}
		update.Apply(&r.db.events[i])
		r.db.events[i].UpdatedAt = time.Now().UTC()
		updated := r.db.events[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *memoryEvents) Delete(_ context.Context, id primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, e := range r.db.events {
		if e.Id == id {
			r.db.events = append(r.db.events[:i], r.db.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryEvents) Count(context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return int64(len(r.db.events)), nil
}

type memoryBookings struct{ db *memoryDB }

func (r *memoryBookings) Create(_ context.Context, booking *model.Booking) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, b := range r.db.bookings {
		if b.User == booking.User && b.Event == booking.Event {
			return ErrDuplicate
		}
	}
	if booking.Id.IsZero() {
		booking.Id = primitive.NewObjectID()
	}
	r.db.bookings = append(r.db.bookings, *booking)
	return nil
}

func (r *memoryBookings) GetOwned(_ context.Context, id, userID primitive.ObjectID) (*model.Booking, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, b := range r.db.bookings {
		if b.Id == id && b.User == userID {
			found := b
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryBookings) ListByUser(_ context.Context, userID primitive.ObjectID) ([]model.Booking, error) {
	r.db.mu.RLock()
	bookings := []model.Booking{}
	for _, b := range r.db.bookings {
		if b.User == userID {
			bookings = append(bookings, b)
		}
	}
	r.db.mu.RUnlock()

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *memoryBookings) DeleteOwned(_ context.Context, id, userID primitive.ObjectID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, b := range r.db.bookings {
		if b.Id == id && b.User == userID {
			r.db.bookings = append(r.db.bookings[:i], r.db.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryBookings) Count(context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return int64(len(r.db.bookings)), nil
}

type memoryPayments struct{ db *memoryDB }

func (r *memoryPayments) Create(_ context.Context, payment *model.Payment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if payment.Id.IsZero() {
		payment.Id = primitive.NewObjectID()
	}
	r.db.payments = append(r.db.payments, *payment)
	return nil
}

func (r *memoryPayments) ListByBooking(_ context.Context, bookingID primitive.ObjectID) ([]model.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	payments := []model.Payment{}
	for _, p := range r.db.payments {
		if p.Booking == bookingID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}
