package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Event     primitive.ObjectID `json:"event" bson:"event"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// BookingDetails is a booking expanded with its event and owner. Event is nil when the
// event has been deleted since the booking was made.
type BookingDetails struct {
	Id        primitive.ObjectID `json:"_id"`
	User      UserSummary        `json:"user"`
	Event     *Event             `json:"event"`
	CreatedAt time.Time          `json:"createdAt"`
}
