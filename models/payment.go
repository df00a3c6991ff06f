package models

import "time"

// Payment statuses mirror the Stripe payment-intent lifecycle.
const (
	PaymentRequiresAction = "requires_action"
	PaymentSucceeded      = "succeeded"
	PaymentFailed         = "failed"
	PaymentCanceled       = "canceled"
)

// Payment is the local record for a payment attempt against a Booking.
// Amount is in minor currency units.
type Payment struct {
	ID              string    `bson:"id" json:"id"`
	BookingID       string    `bson:"booking_id" json:"booking_id"`
	Amount          int64     `bson:"amount" json:"amount"`
	Currency        string    `bson:"currency" json:"currency"`
	Status          string    `bson:"status" json:"status"`
	PaymentIntentID string    `bson:"payment_intent_id" json:"payment_intent_id"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
