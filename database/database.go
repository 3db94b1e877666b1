package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-booking-api/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const (
	UsersCollection    = "users"
	EventsCollection   = "events"
	BookingsCollection = "bookings"
	PaymentsCollection = "payments"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.UserData) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.UserData, error)
	GetByEmail(ctx context.Context, email string) (*model.UserData, error)
	List(ctx context.Context) ([]model.UserData, error)
	Update(ctx context.Context, id primitive.ObjectID, update model.UserUpdate) (*model.UserData, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Event, error)
	// List returns every event ordered by ascending date, ties broken by id.
	List(ctx context.Context) ([]model.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, update model.EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	// Create fails with ErrDuplicate when the user already holds a booking for the event.
	Create(ctx context.Context, booking *model.Booking) error
	GetOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Booking, error)
	// ListByUser returns the user's bookings ordered by creation time.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Booking, error)
	DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]model.Payment, error)
}

// Store bundles the repositories of one backing database.
type Store struct {
	Users    UserRepository
	Events   EventRepository
	Bookings BookingRepository
	Payments PaymentRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// DBInit connects to MongoDB, checks the connection and makes sure the indexes the
// repositories rely on exist.
func DBInit(ctx context.Context, connString, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Users:    &MongoUsers{collection: db.Collection(UsersCollection)},
		Events:   &MongoEvents{collection: db.Collection(EventsCollection)},
		Bookings: &MongoBookings{collection: db.Collection(BookingsCollection)},
		Payments: &MongoPayments{collection: db.Collection(PaymentsCollection)},
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: client.Disconnect,
	}, nil
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		EventsCollection: {
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}},
		},
		BookingsCollection: {
			// one booking per (user, event); the insert itself enforces it
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "event", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		PaymentsCollection: {
			{Keys: bson.D{{Key: "booking", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("cannot create indexes for %s: %w", collection, err)
		}
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	defer cur.Close(ctx)

	items := []T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("server side problem occurred while decoding: %w", err)
		}
		items = append(items, item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("server side problem occurred while reading: %w", err)
	}
	return items, nil
}
