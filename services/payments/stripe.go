package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"lumera/models"
	"lumera/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// signatureTolerance bounds how stale a webhook timestamp may be before the
// event is rejected as a possible replay.
const signatureTolerance = 5 * time.Minute

// EventVerifier authenticates raw webhook payloads. The ingress depends on
// this interface so tests can substitute fakes.
type EventVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

// Service wraps the Stripe API behind an explicit client handle. No state
// is kept beyond credentials.
type Service struct {
	api           *client.API
	webhookSecret string
	logger        *zap.Logger
}

// NewService constructs the Stripe wrapper from injected credentials.
func NewService(apiKey, webhookSecret string, logger *zap.Logger) *Service {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Service{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// VerifyEvent checks the signature header against the shared secret before
// any event data is trusted. A mismatch yields a SignatureError.
//
// API version mismatches are ignored: webhook endpoints are pinned to
// whatever version the Stripe dashboard configured them with, and a version
// drift is not an authentication failure. The fields this server reads
// (event type, intent id, metadata) are stable across versions.
func (s *Service) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                signatureTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, &utils.SignatureError{Cause: err}
	}
	return event, nil
}

// GetPaymentIntent inspects a payment intent's current status by id.
func (s *Service) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	intent, err := s.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return intent, nil
}

// UpsertServiceProduct keeps a Stripe product/price pair in sync with a
// Hapio service. The product id is derived from the service id so retries
// converge on the same product instead of multiplying them.
func (s *Service) UpsertServiceProduct(ctx context.Context, service models.HapioService, currency string) (*stripe.Product, *stripe.Price, error) {
	productID := "hapio_" + service.ID

	product, err := s.getOrCreateProduct(ctx, productID, service.Name)
	if err != nil {
		return nil, nil, err
	}

	amount, err := priceToMinorUnits(service.Price)
	if err != nil {
		return nil, nil, err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(product.ID),
		UnitAmount: stripe.Int64(amount),
		Currency:   stripe.String(currency),
		Metadata:   map[string]string{"hapio_service_id": service.ID},
	}
	priceParams.Context = ctx
	price, err := s.api.Prices.New(priceParams)
	if err != nil {
		return nil, nil, wrapStripeErr(err)
	}

	updateParams := &stripe.ProductParams{DefaultPrice: stripe.String(price.ID)}
	updateParams.Context = ctx
	if _, err := s.api.Products.Update(product.ID, updateParams); err != nil {
		return nil, nil, wrapStripeErr(err)
	}

	s.logger.Info("synced stripe product for service",
		zap.String("serviceID", service.ID),
		zap.String("productID", product.ID),
		zap.String("priceID", price.ID),
	)
	return product, price, nil
}

func (s *Service) getOrCreateProduct(ctx context.Context, productID, name string) (*stripe.Product, error) {
	getParams := &stripe.ProductParams{}
	getParams.Context = ctx
	product, err := s.api.Products.Get(productID, getParams)
	if err == nil {
		if product.Name != name {
			updateParams := &stripe.ProductParams{Name: stripe.String(name)}
			updateParams.Context = ctx
			return s.wrapProduct(s.api.Products.Update(productID, updateParams))
		}
		return product, nil
	}

	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) || stripeErr.Code != stripe.ErrorCodeResourceMissing {
		return nil, wrapStripeErr(err)
	}

	createParams := &stripe.ProductParams{
		ID:   stripe.String(productID),
		Name: stripe.String(name),
	}
	createParams.Context = ctx
	return s.wrapProduct(s.api.Products.New(createParams))
}

func (s *Service) wrapProduct(product *stripe.Product, err error) (*stripe.Product, error) {
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return product, nil
}

// priceToMinorUnits converts Hapio's decimal price string into minor
// currency units.
func priceToMinorUnits(price string) (int64, error) {
	if price == "" {
		return 0, utils.NewValidationError("service has no price to sync")
	}
	value, err := strconv.ParseFloat(price, 64)
	if err != nil || value < 0 {
		return 0, utils.NewValidationError("invalid service price %q", price)
	}
	return int64(math.Round(value * 100)), nil
}

func wrapStripeErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &utils.UpstreamError{
			Service: "stripe",
			Status:  stripeErr.HTTPStatusCode,
			Body:    stripeErr.Msg,
		}
	}
	return &utils.UpstreamError{Service: "stripe", Body: fmt.Sprintf("request failed: %v", err)}
}
