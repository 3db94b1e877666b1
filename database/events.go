package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event-booking-api/model"
)

type MongoEvents struct {
	collection *mongo.Collection
}

func (r *MongoEvents) Create(ctx context.Context, event *model.Event) error {
	if event.Id.IsZero() {
		event.Id = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return translateError(err)
}

func (r *MongoEvents) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	var event model.Event
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&event); err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

func (r *MongoEvents) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Event, error) {
	found := make(map[primitive.ObjectID]model.Event, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cur, err := r.collection.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("server side problem occurred while reading events: %w", err)
	}
	events, err := decodeAll[model.Event](ctx, cur)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		found[event.Id] = event
	}
	return found, nil
}

func (r *MongoEvents) List(ctx context.Context) ([]model.Event, error) {
	cur, err := r.collection.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("server side problem occurred while reading events: %w", err)
	}
	return decodeAll[model.Event](ctx, cur)
}

func (r *MongoEvents) Update(ctx context.Context, id primitive.ObjectID, update model.EventUpdate) (*model.Event, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Date != nil {
		set["date"] = *update.Date
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}

	var event model.Event
	err := r.collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

func (r *MongoEvents) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, bson.D{{Key: "_id", Value: id}})
}

func (r *MongoEvents) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}
