package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lumera/config"
	"lumera/services/finalize"
	"lumera/utils"

	"github.com/hibiken/asynq"
)

const TypeFinalizeRetry = "finalize:retry"

// FinalizeRetryPayload identifies the booking/payment pair to re-drive.
type FinalizeRetryPayload struct {
	HapioBookingID  string `json:"hapioBookingId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// NewFinalizeRetryTask builds a durable retry task for a finalization that
// failed after its webhook was already acknowledged.
func NewFinalizeRetryTask(hapioBookingID, paymentIntentID string) (*asynq.Task, error) {
	payload, err := json.Marshal(FinalizeRetryPayload{
		HapioBookingID:  hapioBookingID,
		PaymentIntentID: paymentIntentID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFinalizeRetry, payload, asynq.MaxRetry(10), asynq.Timeout(time.Minute)), nil
}

// NewQueueClient returns an asynq client on the queue Redis DB.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpt())
}

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitFinalizeWorker runs the async retry worker in background.
func InitFinalizeWorker(finalizer finalize.Finalizer) {
	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeFinalizeRetry, handleFinalizeRetry(finalizer))

	go func() {
		log.Println("[FinalizeWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[FinalizeWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[FinalizeWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleFinalizeRetry(finalizer finalize.Finalizer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload FinalizeRetryPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid finalize retry payload: %v: %w", err, asynq.SkipRetry)
		}

		result, err := finalizer.Finalize(ctx, payload.HapioBookingID, payload.PaymentIntentID)
		if err != nil {
			if !utils.IsRetryable(err) {
				return fmt.Errorf("finalize retry is terminal: %v: %w", err, asynq.SkipRetry)
			}
			// Retryable failures bubble up so asynq backs off and retries;
			// the finalizer is idempotent, so re-runs are harmless.
			return err
		}
		log.Printf("[FinalizeWorker] finalize retry for %s completed: %s", payload.HapioBookingID, result.Outcome)
		return nil
	}
}
