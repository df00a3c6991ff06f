package routes

import (
	"net/http"
	"time"

	"lumera/handlers"
	"lumera/middleware"
	"lumera/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers the JWT-guarded admin surface.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/auth/login", hb.AdminLoginHandler)

		// Everything past login requires an operator token.
		api.Use(middleware.JWTAuthAdminMiddleware())

		api.GET("/locations", hb.ListLocationsHandler)
		api.POST("/locations", hb.CreateLocationHandler)
		api.GET("/resources", hb.ListResourcesHandler)
		api.POST("/resources", hb.CreateResourceHandler)
		api.GET("/booking-groups", hb.ListBookingGroupsHandler)
		api.POST("/booking-groups", hb.CreateBookingGroupHandler)

		api.GET("/services", hb.ListServicesHandler)
		api.POST("/services", hb.CreateServiceHandler)
		api.DELETE("/services/:id", hb.DeleteServiceHandler)
		api.POST("/services/bulk-delete", hb.BulkDeleteServicesHandler)
		api.POST("/services/reorder", hb.ReorderServicesHandler)
		api.POST("/services/:id/sync-stripe", hb.SyncStripeHandler)
		api.GET("/services/:id/resources", hb.ListServiceResourcesHandler)
		api.POST("/services/:id/resources", hb.AssociateResourceHandler)
		api.GET("/services/:id/bookable-slots", hb.ListBookableSlotsHandler)

		api.GET("/bookings", hb.ListBookingsHandler)
	}
}

// RegisterBookingRoutes registers the finalize endpoint and the legacy
// Cal.com tombstones.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/finalize", hb.FinalizeBookingHandler)

		// Retired Cal.com hold-token flow.
		api.POST("/hold/:token/expire", hb.GoneHoldTokenHandler)
		api.POST("/hold/:token/regenerate", hb.GoneHoldTokenHandler)
	}
}

// RegisterWebhookRoutes registers unauthenticated webhook ingress; the
// payload signature is the authentication.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAdminRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterHealthRoute(r)
}
