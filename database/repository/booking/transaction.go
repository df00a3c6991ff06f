package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"lumera/models"
	"lumera/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MarkPaid flips the Booking/Payment pair to paid/succeeded in one mongo
// transaction. The booking update is conditional on the record not already
// being paid; a zero match means another invocation won the race and the
// whole transaction is abandoned with updated == false.
func (repo *MongoBookingRepo) MarkPaid(ctx context.Context, bookingID, paymentIntentID string) (bool, error) {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	updated := false
	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()

		res, err := repo.bookingColl.UpdateOne(sc,
			bson.M{
				"id":             bookingID,
				"payment_status": bson.M{"$ne": models.BookingPaymentPaid},
			},
			bson.M{"$set": bson.M{
				"payment_status": models.BookingPaymentPaid,
				"updated_at":     now,
			}},
		)
		if err != nil {
			return fmt.Errorf("booking update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			// Already paid; nothing to write.
			return nil
		}
		updated = true

		payRes, err := repo.paymentColl.UpdateOne(sc,
			bson.M{"payment_intent_id": paymentIntentID},
			bson.M{"$set": bson.M{
				"status":     models.PaymentSucceeded,
				"updated_at": now,
			}},
		)
		if err != nil {
			return fmt.Errorf("payment update failed: %w", err)
		}
		if payRes.MatchedCount == 0 {
			// A booking must never read paid while its payment record is
			// missing or bound to another intent; abort so the pair stays
			// consistent.
			return &utils.NotFoundError{Resource: "payment", ID: paymentIntentID}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, fmt.Errorf("mark-paid transaction failed: %w", err)
	}

	return updated, nil
}
