package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "lumera/database/repository/booking"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingsHandler serves the local booking history.
type BookingsHandler struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

func NewBookingsHandler(repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingsHandler {
	return &BookingsHandler{Repo: repo, Logger: logger}
}

// ListBookingsHandler handles GET /api/admin/bookings.
func (h *BookingsHandler) ListBookingsHandler(c *gin.Context) {
	page := 1
	perPage := 20
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v > 0 && v <= 100 {
		perPage = v
	}

	bookings, total, err := h.Repo.ListBookings(c.Request.Context(), page, perPage)
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		utils.RespondError(c, err, "failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": bookings,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
		},
	})
}
