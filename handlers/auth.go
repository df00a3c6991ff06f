package handlers

import (
	"net/http"
	"time"

	"lumera/config"
	"lumera/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 12 * time.Hour

// AdminLoginHandler handles POST /api/admin/auth/login. The single operator
// account comes from configuration; the stored password is a bcrypt hash.
func AdminLoginHandler(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required", "")
		return
	}

	cfg := config.AppConfig
	if body.Email != cfg.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(body.Password)) != nil {
		zap.L().Warn("admin login rejected", zap.String("email", body.Email))
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateAdminToken(body.Email, adminTokenTTL)
	if err != nil {
		zap.L().Error("failed to sign admin token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(adminTokenTTL.Seconds()),
	})
}
