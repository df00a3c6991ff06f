package models

import "time"

// Booking payment statuses. Bookings are never deleted, only transitioned.
const (
	BookingPaymentPending  = "pending"
	BookingPaymentPaid     = "paid"
	BookingPaymentFailed   = "failed"
	BookingPaymentCanceled = "canceled"
)

// Booking is the local record for a Hapio booking. It is created when a slot
// hold is first requested and mutated by the finalizer once payment settles.
type Booking struct {
	ID             string            `bson:"id" json:"id"`
	HapioBookingID string            `bson:"hapio_booking_id" json:"hapio_booking_id"` // hold/booking id in the scheduling system
	CustomerName   string            `bson:"customer_name" json:"customer_name"`
	CustomerEmail  string            `bson:"customer_email" json:"customer_email"`
	ServiceID      string            `bson:"service_id" json:"service_id"`
	ScheduledAt    time.Time         `bson:"scheduled_at" json:"scheduled_at"`
	PaymentStatus  string            `bson:"payment_status" json:"payment_status"`
	Metadata       map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `bson:"updated_at" json:"updated_at"`
}
