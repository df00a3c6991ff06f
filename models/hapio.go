package models

import "time"

// Wire types for the Hapio scheduling API. Field names follow the upstream
// JSON contract; durations are ISO-8601 strings (see utils/duration.go).

// HapioResource is a schedulable resource (a staff member, a room).
type HapioResource struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	MaxSimultaneousBookings int       `json:"max_simultaneous_bookings"`
	Enabled                 bool      `json:"enabled"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// HapioLocation is a physical or virtual place services are delivered at.
type HapioLocation struct {
	ID                        string    `json:"id"`
	Name                      string    `json:"name"`
	TimeZone                  string    `json:"time_zone"`
	ResourceSelectionStrategy string    `json:"resource_selection_strategy"`
	Enabled                   bool      `json:"enabled"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// HapioService is a bookable service offering.
type HapioService struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Duration         string    `json:"duration"`          // ISO-8601, e.g. PT60M
	BookableInterval string    `json:"bookable_interval"` // ISO-8601
	BufferTimeBefore string    `json:"buffer_time_before"`
	BufferTimeAfter  string    `json:"buffer_time_after"`
	Price            string    `json:"price"`
	Enabled          bool      `json:"enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HapioBookingGroup clusters related bookings (e.g. a course of sessions).
type HapioBookingGroup struct {
	ID        string            `json:"id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// HapioBookableSlot is a slot a service can be booked into.
type HapioBookableSlot struct {
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	ResourceID string    `json:"resource_id,omitempty"`
	LocationID string    `json:"location_id,omitempty"`
}

// HapioBooking is a hold or a confirmed booking in the scheduling system.
// A hold has IsTemporary set; confirming clears it.
type HapioBooking struct {
	ID          string            `json:"id"`
	ResourceID  string            `json:"resource_id"`
	ServiceID   string            `json:"service_id"`
	LocationID  string            `json:"location_id"`
	StartsAt    time.Time         `json:"starts_at"`
	EndsAt      time.Time         `json:"ends_at"`
	IsTemporary bool              `json:"is_temporary"`
	FinalizedAt *time.Time        `json:"finalized_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PageMeta is the pagination envelope Hapio wraps list responses in.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}
