package handlers

import (
	"context"
	"net/http"

	settingsRepo "lumera/database/repository/servicesettings"
	"lumera/models"
	"lumera/services/hapio"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// ProductSyncer is the slice of the payments service the handler needs.
type ProductSyncer interface {
	UpsertServiceProduct(ctx context.Context, service models.HapioService, currency string) (*stripe.Product, *stripe.Price, error)
}

// ServicesHandler manages Hapio services plus the local admin-side state
// layered on top of them (display order, Stripe product sync).
type ServicesHandler struct {
	Hapio    hapio.API
	Settings settingsRepo.SettingsRepository
	Payments ProductSyncer
	Logger   *zap.Logger
}

func NewServicesHandler(api hapio.API, settings settingsRepo.SettingsRepository, payments ProductSyncer, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{Hapio: api, Settings: settings, Payments: payments, Logger: logger}
}

// ListServicesHandler handles GET /api/admin/services.
func (h *ServicesHandler) ListServicesHandler(c *gin.Context) {
	page, err := h.Hapio.ListServices(c.Request.Context(), parsePagination(c))
	if err != nil {
		utils.RespondError(c, err, "failed to list services")
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateServiceHandler handles POST /api/admin/services. Durations arrive
// as plain minute counts and are converted to Hapio's ISO-8601 form.
func (h *ServicesHandler) CreateServiceHandler(c *gin.Context) {
	var body struct {
		Name            string `json:"name"`
		Type            string `json:"type"`
		DurationMinutes int    `json:"duration_minutes"`
		Price           string `json:"price"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing service name", "")
		return
	}

	duration, err := utils.MinutesToISO8601(body.DurationMinutes)
	if err != nil {
		utils.RespondError(c, err, "invalid duration")
		return
	}

	serviceType := body.Type
	if serviceType == "" {
		serviceType = "fixed"
	}
	service, err := h.Hapio.CreateService(c.Request.Context(), hapio.CreateServiceInput{
		Name:     body.Name,
		Type:     serviceType,
		Duration: duration,
		Price:    body.Price,
		Enabled:  true,
	})
	if err != nil {
		utils.RespondError(c, err, "failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

// DeleteServiceHandler handles DELETE /api/admin/services/:id.
func (h *ServicesHandler) DeleteServiceHandler(c *gin.Context) {
	serviceID := c.Param("id")
	if err := h.Hapio.DeleteService(c.Request.Context(), serviceID); err != nil {
		utils.RespondError(c, err, "failed to delete service")
		return
	}
	if err := h.Settings.Delete(c.Request.Context(), serviceID); err != nil {
		// The upstream delete already happened; losing the local row is a
		// cleanup miss, not a failed operation.
		h.Logger.Warn("failed to delete service settings", zap.String("serviceID", serviceID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BulkDeleteServicesHandler handles POST /api/admin/services/bulk-delete.
// Partial failure is an expected outcome: the response is always 200 with a
// per-id tally rather than aborting the batch.
func (h *ServicesHandler) BulkDeleteServicesHandler(c *gin.Context) {
	var body struct {
		ServiceIDs []string `json:"serviceIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ServiceIDs) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "serviceIds is required", "")
		return
	}

	type deleteFailure struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	deleted := 0
	failures := make([]deleteFailure, 0)

	for _, serviceID := range body.ServiceIDs {
		if err := h.Hapio.DeleteService(c.Request.Context(), serviceID); err != nil {
			h.Logger.Warn("bulk delete: service delete failed",
				zap.String("serviceID", serviceID), zap.Error(err))
			failures = append(failures, deleteFailure{ID: serviceID, Error: err.Error()})
			continue
		}
		if err := h.Settings.Delete(c.Request.Context(), serviceID); err != nil {
			h.Logger.Warn("bulk delete: failed to delete service settings",
				zap.String("serviceID", serviceID), zap.Error(err))
		}
		deleted++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": deleted,
		"failed":  len(failures),
		"errors":  failures,
	})
}

// ReorderServicesHandler handles POST /api/admin/services/reorder.
func (h *ServicesHandler) ReorderServicesHandler(c *gin.Context) {
	var body struct {
		Services []struct {
			ID           string `json:"id"`
			DisplayOrder int    `json:"display_order"`
		} `json:"services"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.Services) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "services is required", "")
		return
	}

	orders := make([]settingsRepo.ServiceSetting, 0, len(body.Services))
	for _, svc := range body.Services {
		if svc.ID == "" {
			utils.JSONError(c, http.StatusBadRequest, "service id is required", "")
			return
		}
		orders = append(orders, settingsRepo.ServiceSetting{
			ServiceID:    svc.ID,
			DisplayOrder: svc.DisplayOrder,
		})
	}

	if err := h.Settings.Reorder(c.Request.Context(), orders); err != nil {
		utils.RespondError(c, err, "failed to reorder services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SyncStripeHandler handles POST /api/admin/services/:id/sync-stripe. It
// looks the service up in Hapio and upserts the matching Stripe
// product/price pair.
func (h *ServicesHandler) SyncStripeHandler(c *gin.Context) {
	serviceID := c.Param("id")
	var body struct {
		Currency string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.Currency == "" {
		body.Currency = "usd"
	}

	service, err := h.Hapio.GetService(c.Request.Context(), serviceID)
	if err != nil {
		utils.RespondError(c, err, "failed to fetch service")
		return
	}

	product, price, err := h.Payments.UpsertServiceProduct(c.Request.Context(), *service, body.Currency)
	if err != nil {
		utils.RespondError(c, err, "failed to sync stripe product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": product.ID,
		"price_id":   price.ID,
	})
}
