package hapio

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"lumera/models"
)

func (c *Client) ListBookableSlots(ctx context.Context, serviceID string, q SlotQuery) (*Page[models.HapioBookableSlot], error) {
	query := url.Values{}
	query.Set("from", q.From.Format(time.RFC3339))
	query.Set("to", q.To.Format(time.RFC3339))
	if q.LocationID != "" {
		query.Set("location", q.LocationID)
	}
	if q.ResourceID != "" {
		query.Set("resource", q.ResourceID)
	}

	var page Page[models.HapioBookableSlot]
	path := "/services/" + url.PathEscape(serviceID) + "/bookable-slots"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error) {
	var booking models.HapioBooking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(bookingID), nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmBooking converts a temporary hold into a permanent booking.
// Hapio rejects re-confirmation of an already-finalized or canceled hold
// with 409, which do surfaces as a ConflictError; callers decide whether
// that is a failure.
func (c *Client) ConfirmBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error) {
	body := map[string]any{"is_temporary": false}
	var booking models.HapioBooking
	if err := c.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(bookingID), nil, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(bookingID), nil, nil, nil)
}
