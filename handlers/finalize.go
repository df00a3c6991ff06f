package handlers

import (
	"net/http"

	"lumera/services/finalize"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FinalizeHandler exposes the finalizer directly for operator-triggered
// reconciliation and integration testing.
type FinalizeHandler struct {
	Finalizer finalize.Finalizer
	Logger    *zap.Logger
}

func NewFinalizeHandler(finalizer finalize.Finalizer, logger *zap.Logger) *FinalizeHandler {
	return &FinalizeHandler{Finalizer: finalizer, Logger: logger}
}

// FinalizeBookingHandler handles POST /api/bookings/finalize.
func (h *FinalizeHandler) FinalizeBookingHandler(c *gin.Context) {
	var body struct {
		HapioBookingID  string `json:"hapioBookingId"`
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.Finalizer.Finalize(c.Request.Context(), body.HapioBookingID, body.PaymentIntentID)
	if err != nil {
		h.Logger.Error("manual finalization failed",
			zap.String("hapioBookingID", body.HapioBookingID),
			zap.Error(err))
		utils.RespondError(c, err, "finalization failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
