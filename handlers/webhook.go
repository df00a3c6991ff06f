package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"lumera/cron"
	"lumera/services/finalize"
	"lumera/services/payments"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// maxWebhookBody caps how much of a webhook payload is read.
const maxWebhookBody = 1 << 20

// Enqueuer is the slice of the asynq client the ingress needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// WebhookHandler verifies inbound Stripe events and dispatches recognized
// types to the finalizer.
type WebhookHandler struct {
	Verifier  payments.EventVerifier
	Finalizer finalize.Finalizer
	Queue     Enqueuer
	Logger    *zap.Logger
}

func NewWebhookHandler(verifier payments.EventVerifier, finalizer finalize.Finalizer, queue Enqueuer, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Verifier: verifier, Finalizer: finalizer, Queue: queue, Logger: logger}
}

// StripeWebhookHandler handles POST /api/webhooks/stripe. The signature is
// the authentication; nothing from the payload is trusted before it checks
// out. Unknown event types are acknowledged without action so Stripe does
// not retry them forever.
func (h *WebhookHandler) StripeWebhookHandler(c *gin.Context) {
	rawBody, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing Stripe-Signature header", "")
		return
	}

	event, err := h.Verifier.VerifyEvent(rawBody, sigHeader)
	if err != nil {
		utils.RespondError(c, err, "webhook verification failed")
		return
	}

	if event.Type != "payment_intent.succeeded" {
		h.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "malformed payment intent payload", err.Error())
		return
	}

	hapioBookingID := intent.Metadata["bookingId"]
	if hapioBookingID == "" {
		h.Logger.Warn("payment intent carries no bookingId metadata, acknowledging without action",
			zap.String("paymentIntentID", intent.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	result, err := h.Finalizer.Finalize(c.Request.Context(), hapioBookingID, intent.ID)
	if err != nil {
		if !utils.IsRetryable(err) {
			// Nothing a redelivery could fix; ack so Stripe stops resending.
			h.Logger.Error("finalization failed terminally for webhook event",
				zap.String("hapioBookingID", hapioBookingID),
				zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		// Hand retryable failures to the durable queue instead of leaning on
		// Stripe's redelivery schedule. Only a queue outage bounces the
		// delivery back to Stripe.
		task, taskErr := cron.NewFinalizeRetryTask(hapioBookingID, intent.ID)
		if taskErr == nil {
			_, taskErr = h.Queue.Enqueue(task)
		}
		if taskErr != nil {
			h.Logger.Error("failed to queue finalize retry, requesting redelivery",
				zap.String("hapioBookingID", hapioBookingID),
				zap.NamedError("finalizeError", err),
				zap.NamedError("queueError", taskErr))
			utils.JSONError(c, http.StatusInternalServerError, "failed to process event", err.Error())
			return
		}

		h.Logger.Warn("finalization failed, queued for retry",
			zap.String("hapioBookingID", hapioBookingID),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"received": true, "queued": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "outcome": result.Outcome})
}
