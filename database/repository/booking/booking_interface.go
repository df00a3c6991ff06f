package bookingRepo

import (
	"context"

	"lumera/models"
)

// BookingRepository persists local Booking and Payment records.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetByHapioID resolves the local Booking for a scheduling-system
	// booking id. Returns utils.NotFoundError when no record exists.
	GetByHapioID(ctx context.Context, hapioBookingID string) (*models.Booking, error)

	ListBookings(ctx context.Context, page, perPage int) ([]models.Booking, int64, error)

	// MarkPaid transitions the Booking to paid and its Payment to succeeded
	// in a single transaction. It reports false without writing anything if
	// the Booking is already paid, so concurrent finalizations collapse to
	// exactly one effective write.
	MarkPaid(ctx context.Context, bookingID, paymentIntentID string) (bool, error)
}
