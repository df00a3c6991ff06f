package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every route handler so route registration takes
// a single wired value.
type HandlerBundle struct {
	// Auth.
	AdminLoginHandler gin.HandlerFunc

	// Catalog (locations, resources, booking groups, associations).
	ListLocationsHandler        gin.HandlerFunc
	CreateLocationHandler       gin.HandlerFunc
	ListResourcesHandler        gin.HandlerFunc
	CreateResourceHandler       gin.HandlerFunc
	ListBookingGroupsHandler    gin.HandlerFunc
	CreateBookingGroupHandler   gin.HandlerFunc
	ListServiceResourcesHandler gin.HandlerFunc
	AssociateResourceHandler    gin.HandlerFunc

	// Services.
	ListServicesHandler       gin.HandlerFunc
	CreateServiceHandler      gin.HandlerFunc
	DeleteServiceHandler      gin.HandlerFunc
	BulkDeleteServicesHandler gin.HandlerFunc
	ReorderServicesHandler    gin.HandlerFunc
	SyncStripeHandler         gin.HandlerFunc

	// Availability.
	ListBookableSlotsHandler gin.HandlerFunc

	// Bookings.
	ListBookingsHandler    gin.HandlerFunc
	FinalizeBookingHandler gin.HandlerFunc
	StripeWebhookHandler   gin.HandlerFunc
	GoneHoldTokenHandler   gin.HandlerFunc
}
