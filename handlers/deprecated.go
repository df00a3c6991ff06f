package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GoneHoldTokenHandler answers the legacy Cal.com hold-token endpoints.
// The token-based hold expiry/regeneration flow was retired with the
// Cal.com migration; the route stays registered so old clients get a clear
// 410 instead of a 404.
func GoneHoldTokenHandler(c *gin.Context) {
	c.JSON(http.StatusGone, gin.H{
		"error":   "endpoint retired",
		"details": "hold tokens were part of the legacy Cal.com flow; holds are now managed through the scheduling API and finalized on payment",
	})
}
