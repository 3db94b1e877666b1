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

type MongoUsers struct {
	collection *mongo.Collection
}

func (r *MongoUsers) Create(ctx context.Context, user *model.UserData) error {
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	return translateError(err)
}

func (r *MongoUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*model.UserData, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *MongoUsers) GetByEmail(ctx context.Context, email string) (*model.UserData, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoUsers) findOne(ctx context.Context, filter bson.D) (*model.UserData, error) {
	var user model.UserData
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *MongoUsers) List(ctx context.Context) ([]model.UserData, error) {
	cur, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("server side problem occurred while reading users: %w", err)
	}
	return decodeAll[model.UserData](ctx, cur)
}

func (r *MongoUsers) Update(ctx context.Context, id primitive.ObjectID, update model.UserUpdate) (*model.UserData, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.HashedPassword != nil {
		set["password_hash"] = *update.HashedPassword
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}

	var user model.UserData
	err := r.collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *MongoUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteOne(ctx, r.collection, bson.D{{Key: "_id", Value: id}})
}

func (r *MongoUsers) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

func deleteOne(ctx context.Context, collection *mongo.Collection, filter bson.D) error {
	res, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("server side problem occurred while deleting: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
