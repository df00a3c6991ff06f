package finalize

import (
	"context"

	"lumera/models"
)

// Outcome distinguishes the terminal states of a finalization attempt.
type Outcome string

const (
	// OutcomeFinalized means this invocation confirmed the hold and marked
	// the local records paid.
	OutcomeFinalized Outcome = "finalized"
	// OutcomeAlreadyFinalized means a previous (or concurrent) invocation
	// already completed the sequence; nothing was changed.
	OutcomeAlreadyFinalized Outcome = "already_finalized"
)

// Result is the structured outcome returned to webhook ingress and the
// operator finalize endpoint.
type Result struct {
	Outcome         Outcome `json:"outcome"`
	BookingID       string  `json:"bookingId"`
	HapioBookingID  string  `json:"hapioBookingId"`
	PaymentIntentID string  `json:"paymentIntentId"`
}

// HoldConfirmer is the slice of the scheduling client the finalizer needs.
type HoldConfirmer interface {
	ConfirmBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error)
}

// BookingStore is the slice of the booking repository the finalizer needs.
type BookingStore interface {
	GetByHapioID(ctx context.Context, hapioBookingID string) (*models.Booking, error)
	MarkPaid(ctx context.Context, bookingID, paymentIntentID string) (bool, error)
}

// Finalizer drives a paid booking to its consistent confirmed state. It is
// safe to invoke any number of times for the same identifier pair.
type Finalizer interface {
	Finalize(ctx context.Context, hapioBookingID, paymentIntentID string) (*Result, error)
}
