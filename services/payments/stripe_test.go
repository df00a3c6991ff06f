package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumera/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way Stripe does: an
// HMAC-SHA256 over "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyEvent_ValidSignature(t *testing.T) {
	svc := NewService("sk_test", testWebhookSecret, zap.NewNop())
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)

	event, err := svc.VerifyEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if event.ID != "evt_1" {
		t.Fatalf("event id = %q", event.ID)
	}
}

func TestVerifyEvent_OtherAPIVersionAccepted(t *testing.T) {
	svc := NewService("sk_test", testWebhookSecret, zap.NewNop())
	// Endpoints keep whatever API version they were created with; a version
	// older than the SDK's must still verify as long as the signature holds.
	payload := []byte(`{"id":"evt_1","api_version":"2020-08-27","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)

	event, err := svc.VerifyEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if event.APIVersion != "2020-08-27" {
		t.Fatalf("api version = %q", event.APIVersion)
	}
}

func TestVerifyEvent_TamperedBodyRejected(t *testing.T) {
	svc := NewService("sk_test", testWebhookSecret, zap.NewNop())
	original := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	tampered := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","amount":999}`)

	_, err := svc.VerifyEvent(tampered, signPayload(original, testWebhookSecret, time.Now()))
	var sigErr *utils.SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected SignatureError, got %v", err)
	}
}

func TestVerifyEvent_WrongSecretRejected(t *testing.T) {
	svc := NewService("sk_test", testWebhookSecret, zap.NewNop())
	payload := []byte(`{"id":"evt_1"}`)

	_, err := svc.VerifyEvent(payload, signPayload(payload, "whsec_other", time.Now()))
	var sigErr *utils.SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected SignatureError, got %v", err)
	}
}

func TestVerifyEvent_StaleTimestampRejected(t *testing.T) {
	svc := NewService("sk_test", testWebhookSecret, zap.NewNop())
	payload := []byte(`{"id":"evt_1"}`)

	_, err := svc.VerifyEvent(payload, signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
	var sigErr *utils.SignatureError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected SignatureError for stale timestamp, got %v", err)
	}
}

// newStubbedService points the Stripe client at a local test server so the
// wrapper's request and error mapping can be exercised without credentials.
func newStubbedService(t *testing.T, handler http.HandlerFunc) *Service {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		HTTPClient:        server.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	api := &client.API{}
	api.Init("sk_test", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &Service{api: api, webhookSecret: testWebhookSecret, logger: zap.NewNop()}
}

func TestGetPaymentIntent(t *testing.T) {
	svc := newStubbedService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/payment_intents/pi_1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"id":"pi_1","status":"succeeded","amount":15000}`)
	})

	intent, err := svc.GetPaymentIntent(context.Background(), "pi_1")
	if err != nil {
		t.Fatalf("GetPaymentIntent failed: %v", err)
	}
	if intent.ID != "pi_1" || intent.Status != stripe.PaymentIntentStatusSucceeded {
		t.Fatalf("intent = %s/%s", intent.ID, intent.Status)
	}
}

func TestGetPaymentIntent_UpstreamErrorMapping(t *testing.T) {
	svc := newStubbedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent: 'pi_x'"}}`)
	})

	_, err := svc.GetPaymentIntent(context.Background(), "pi_x")
	var ue *utils.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Service != "stripe" || ue.Status != http.StatusNotFound {
		t.Fatalf("UpstreamError = %s/%d", ue.Service, ue.Status)
	}
}

func TestPriceToMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"150.00": 15000,
		"0.50":   50,
		"99":     9900,
		"19.99":  1999,
	}
	for in, want := range cases {
		got, err := priceToMinorUnits(in)
		if err != nil {
			t.Fatalf("priceToMinorUnits(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("priceToMinorUnits(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPriceToMinorUnits_Invalid(t *testing.T) {
	for _, in := range []string{"", "free", "-5"} {
		_, err := priceToMinorUnits(in)
		var ve *utils.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("priceToMinorUnits(%q): expected ValidationError, got %v", in, err)
		}
	}
}
