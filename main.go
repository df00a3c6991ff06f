// File: lumera/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumera/config"
	"lumera/cron"
	"lumera/database"
	bookingRepo "lumera/database/repository/booking"
	settingsRepo "lumera/database/repository/servicesettings"
	"lumera/handlers"
	"lumera/middleware"
	"lumera/routes"
	"lumera/services/finalize"
	"lumera/services/hapio"
	"lumera/services/payments"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	bkRepo := bookingRepo.NewMongoBookingRepo()
	if err := bkRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	stRepo := settingsRepo.NewMongoSettingsRepo(database.DB())

	// External clients.
	hapioClient := hapio.NewClient(config.AppConfig.HapioBaseURL, config.AppConfig.HapioAPIKey, logger)
	paymentService := payments.NewService(config.AppConfig.StripeKey, config.AppConfig.StripeWebhookSecret, logger)

	// The finalizer and its durable retry queue.
	finalizer := finalize.NewFinalizer(bkRepo, hapioClient, logger)
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	cron.InitFinalizeWorker(finalizer)

	// Handlers.
	catalogHandler := handlers.NewCatalogHandler(hapioClient, logger)
	servicesHandler := handlers.NewServicesHandler(hapioClient, stRepo, paymentService, logger)
	slotsHandler := handlers.NewSlotsHandler(hapioClient, utils.GetCacheClient(), logger)
	bookingsHandler := handlers.NewBookingsHandler(bkRepo, logger)
	finalizeHandler := handlers.NewFinalizeHandler(finalizer, logger)
	webhookHandler := handlers.NewWebhookHandler(paymentService, finalizer, queueClient, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AdminLoginHandler: handlers.AdminLoginHandler,

		ListLocationsHandler:        catalogHandler.ListLocationsHandler,
		CreateLocationHandler:       catalogHandler.CreateLocationHandler,
		ListResourcesHandler:        catalogHandler.ListResourcesHandler,
		CreateResourceHandler:       catalogHandler.CreateResourceHandler,
		ListBookingGroupsHandler:    catalogHandler.ListBookingGroupsHandler,
		CreateBookingGroupHandler:   catalogHandler.CreateBookingGroupHandler,
		ListServiceResourcesHandler: catalogHandler.ListServiceResourcesHandler,
		AssociateResourceHandler:    catalogHandler.AssociateResourceHandler,

		ListServicesHandler:       servicesHandler.ListServicesHandler,
		CreateServiceHandler:      servicesHandler.CreateServiceHandler,
		DeleteServiceHandler:      servicesHandler.DeleteServiceHandler,
		BulkDeleteServicesHandler: servicesHandler.BulkDeleteServicesHandler,
		ReorderServicesHandler:    servicesHandler.ReorderServicesHandler,
		SyncStripeHandler:         servicesHandler.SyncStripeHandler,

		ListBookableSlotsHandler: slotsHandler.ListBookableSlotsHandler,

		ListBookingsHandler:    bookingsHandler.ListBookingsHandler,
		FinalizeBookingHandler: finalizeHandler.FinalizeBookingHandler,
		StripeWebhookHandler:   webhookHandler.StripeWebhookHandler,
		GoneHoldTokenHandler:   handlers.GoneHoldTokenHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Sugar().Info("Server exited cleanly")
}
