package events

import "time"

type UserPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type BookingPayload struct {
	BookingID string    `json:"bookingId"`
	UserID    string    `json:"userId"`
	EventID   string    `json:"eventId"`
	At        time.Time `json:"at"`
}

type PaymentPayload struct {
	PaymentID string    `json:"paymentId"`
	BookingID string    `json:"bookingId"`
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	At        time.Time `json:"at"`
}
