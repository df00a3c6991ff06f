package finalize

import (
	"context"
	"errors"

	"lumera/models"
	"lumera/utils"

	"go.uber.org/zap"
)

// DefaultFinalizer implements Finalizer against the Hapio client and the
// booking repository.
type DefaultFinalizer struct {
	Store     BookingStore
	Scheduler HoldConfirmer
	Logger    *zap.Logger
}

func NewFinalizer(store BookingStore, scheduler HoldConfirmer, logger *zap.Logger) *DefaultFinalizer {
	return &DefaultFinalizer{Store: store, Scheduler: scheduler, Logger: logger}
}

// Finalize runs the payment-settled sequence:
//
//  1. Idempotency guard: a booking already paid short-circuits to
//     already_finalized with no external calls. Stripe delivers webhooks
//     at least once, so duplicates are the normal case, not an anomaly.
//  2. Confirm the Hapio hold. A ConflictError means the hold is already in
//     its target state (a concurrent delivery got there first, or a prior
//     run crashed after confirming) and counts as success. Any other
//     failure aborts before local state is touched.
//  3. Mark Payment succeeded + Booking paid in one store transaction. The
//     write re-checks the guard: losing the race inside the transaction
//     degrades to already_finalized rather than a double write.
//
// No partial state is observable on failure, so the whole sequence can be
// retried without bound.
func (f *DefaultFinalizer) Finalize(ctx context.Context, hapioBookingID, paymentIntentID string) (*Result, error) {
	if hapioBookingID == "" {
		return nil, utils.NewValidationError("hapioBookingId is required")
	}
	if paymentIntentID == "" {
		return nil, utils.NewValidationError("paymentIntentId is required")
	}

	booking, err := f.Store.GetByHapioID(ctx, hapioBookingID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BookingID:       booking.ID,
		HapioBookingID:  hapioBookingID,
		PaymentIntentID: paymentIntentID,
	}

	if booking.PaymentStatus == models.BookingPaymentPaid {
		f.Logger.Info("booking already finalized, skipping",
			zap.String("bookingID", booking.ID),
			zap.String("hapioBookingID", hapioBookingID),
		)
		result.Outcome = OutcomeAlreadyFinalized
		return result, nil
	}

	if _, err := f.Scheduler.ConfirmBooking(ctx, hapioBookingID); err != nil {
		var conflict *utils.ConflictError
		if !errors.As(err, &conflict) {
			f.Logger.Error("hold confirmation failed, leaving booking untouched",
				zap.String("hapioBookingID", hapioBookingID),
				zap.Error(err),
			)
			return nil, err
		}
		f.Logger.Info("hold already confirmed upstream, proceeding",
			zap.String("hapioBookingID", hapioBookingID),
		)
	}

	updated, err := f.Store.MarkPaid(ctx, booking.ID, paymentIntentID)
	if err != nil {
		// The hold may now be confirmed while local state still says
		// pending. That window is closed by re-invoking the sequence:
		// step 2 hits the conflict-is-success path and this write retries.
		return nil, err
	}

	if updated {
		result.Outcome = OutcomeFinalized
		f.Logger.Info("booking finalized",
			zap.String("bookingID", booking.ID),
			zap.String("paymentIntentID", paymentIntentID),
		)
	} else {
		result.Outcome = OutcomeAlreadyFinalized
	}
	return result, nil
}
