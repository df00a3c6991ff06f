package hapio

import (
	"context"
	"time"

	"lumera/models"
)

// Page is the decoded Hapio list envelope.
type Page[T any] struct {
	Data []T             `json:"data"`
	Meta models.PageMeta `json:"meta"`
}

// ListParams carry pagination through to Hapio list endpoints.
type ListParams struct {
	Page    int
	PerPage int
}

// SlotQuery scopes a bookable-slot search for a service.
type SlotQuery struct {
	From       time.Time
	To         time.Time
	LocationID string
	ResourceID string
}

// CreateResourceInput mirrors the writable fields of a Hapio resource.
type CreateResourceInput struct {
	Name                    string `json:"name"`
	MaxSimultaneousBookings int    `json:"max_simultaneous_bookings,omitempty"`
	Enabled                 bool   `json:"enabled"`
}

// CreateLocationInput mirrors the writable fields of a Hapio location.
type CreateLocationInput struct {
	Name                      string `json:"name"`
	TimeZone                  string `json:"time_zone"`
	ResourceSelectionStrategy string `json:"resource_selection_strategy,omitempty"`
	Enabled                   bool   `json:"enabled"`
}

// CreateServiceInput mirrors the writable fields of a Hapio service.
// Durations are ISO-8601 strings.
type CreateServiceInput struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Duration         string `json:"duration"`
	BookableInterval string `json:"bookable_interval,omitempty"`
	BufferTimeBefore string `json:"buffer_time_before,omitempty"`
	BufferTimeAfter  string `json:"buffer_time_after,omitempty"`
	Price            string `json:"price,omitempty"`
	Enabled          bool   `json:"enabled"`
}

// CreateBookingGroupInput mirrors the writable fields of a booking group.
type CreateBookingGroupInput struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// API is the full surface of the Hapio client. Handlers and the finalizer
// depend on this interface so tests can substitute fakes.
type API interface {
	ListResources(ctx context.Context, p ListParams) (*Page[models.HapioResource], error)
	CreateResource(ctx context.Context, in CreateResourceInput) (*models.HapioResource, error)

	ListLocations(ctx context.Context, p ListParams) (*Page[models.HapioLocation], error)
	CreateLocation(ctx context.Context, in CreateLocationInput) (*models.HapioLocation, error)

	ListServices(ctx context.Context, p ListParams) (*Page[models.HapioService], error)
	GetService(ctx context.Context, serviceID string) (*models.HapioService, error)
	CreateService(ctx context.Context, in CreateServiceInput) (*models.HapioService, error)
	DeleteService(ctx context.Context, serviceID string) error

	ListBookingGroups(ctx context.Context, p ListParams) (*Page[models.HapioBookingGroup], error)
	CreateBookingGroup(ctx context.Context, in CreateBookingGroupInput) (*models.HapioBookingGroup, error)

	ListServiceResources(ctx context.Context, serviceID string, p ListParams) (*Page[models.HapioResource], error)
	AssociateResource(ctx context.Context, serviceID, resourceID string) error

	ListBookableSlots(ctx context.Context, serviceID string, q SlotQuery) (*Page[models.HapioBookableSlot], error)

	GetBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error)
	ConfirmBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error)
	CancelBooking(ctx context.Context, bookingID string) error
}
