package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-booking-api/model"
)

type MongoBookings struct {
	collection *mongo.Collection
}

func (r *MongoBookings) Create(ctx context.Context, booking *model.Booking) error {
	if booking.Id.IsZero() {
		booking.Id = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, booking)
	return translateError(err)
}

func (r *MongoBookings) GetOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.Booking, error) {
	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "user", Value: userID}}).Decode(&booking)
	if err != nil {
		return nil, translateError(err)
	}
	return &booking, nil
}

func (r *MongoBookings) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Booking, error) {
	cur, err := r.collection.Find(ctx,
		bson.D{{Key: "user", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("server side problem occurred while reading bookings: %w", err)
	}
	return decodeAll[model.Booking](ctx, cur)
}

func (r *MongoBookings) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, bson.D{{Key: "_id", Value: id}, {Key: "user", Value: userID}})
}

func (r *MongoBookings) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

type MongoPayments struct {
	collection *mongo.Collection
}

func (r *MongoPayments) Create(ctx context.Context, payment *model.Payment) error {
	if payment.Id.IsZero() {
		payment.Id = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, payment)
	return translateError(err)
}

func (r *MongoPayments) ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]model.Payment, error) {
	cur, err := r.collection.Find(ctx,
		bson.D{{Key: "booking", Value: bookingID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("server side problem occurred while reading payments: %w", err)
	}
	return decodeAll[model.Payment](ctx, cur)
}
