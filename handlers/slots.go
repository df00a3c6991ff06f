package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lumera/models"
	"lumera/services/hapio"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// slotCacheTTL keeps repeated availability-editor refreshes off the Hapio
// API without the data going meaningfully stale.
const slotCacheTTL = 30 * time.Second

// SlotsHandler serves bookable-slot queries with a short Redis cache in
// front of Hapio.
type SlotsHandler struct {
	Hapio       hapio.API
	CacheClient *redis.Client
	Logger      *zap.Logger
}

func NewSlotsHandler(api hapio.API, cache *redis.Client, logger *zap.Logger) *SlotsHandler {
	return &SlotsHandler{Hapio: api, CacheClient: cache, Logger: logger}
}

// ListBookableSlotsHandler handles
// GET /api/admin/services/:id/bookable-slots?from&to&location_id&resource_id.
func (h *SlotsHandler) ListBookableSlotsHandler(c *gin.Context) {
	serviceID := c.Param("id")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "from and to are required", "expected RFC3339 timestamps")
		return
	}
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid from timestamp", err.Error())
		return
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid to timestamp", err.Error())
		return
	}
	if !to.After(from) {
		utils.JSONError(c, http.StatusBadRequest, "to must be after from", "")
		return
	}

	query := hapio.SlotQuery{
		From:       from,
		To:         to,
		LocationID: c.Query("location_id"),
		ResourceID: c.Query("resource_id"),
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s:%s:%s",
		serviceID, fromStr, toStr, query.LocationID, query.ResourceID)

	if page, ok := h.cachedSlots(c.Request.Context(), cacheKey); ok {
		c.JSON(http.StatusOK, page)
		return
	}

	page, err := h.Hapio.ListBookableSlots(c.Request.Context(), serviceID, query)
	if err != nil {
		utils.RespondError(c, err, "failed to fetch bookable slots")
		return
	}

	h.storeSlots(c.Request.Context(), cacheKey, page)
	c.JSON(http.StatusOK, page)
}

func (h *SlotsHandler) cachedSlots(ctx context.Context, key string) (*hapio.Page[models.HapioBookableSlot], bool) {
	if h.CacheClient == nil {
		return nil, false
	}
	data, err := h.CacheClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var page hapio.Page[models.HapioBookableSlot]
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (h *SlotsHandler) storeSlots(ctx context.Context, key string, page *hapio.Page[models.HapioBookableSlot]) {
	if h.CacheClient == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := h.CacheClient.Set(ctx, key, data, slotCacheTTL).Err(); err != nil {
		h.Logger.Debug("failed to cache slot query", zap.Error(err))
	}
}
