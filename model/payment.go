package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

type Payment struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Booking   primitive.ObjectID `json:"booking" bson:"booking"`
	Amount    float64            `json:"amount" bson:"amount"`
	Status    PaymentStatus      `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

type Stats struct {
	UsersCount    int64 `json:"usersCount"`
	EventsCount   int64 `json:"eventsCount"`
	BookingsCount int64 `json:"bookingsCount"`
}
