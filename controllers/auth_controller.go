package controllers

import (
	"net/http"
	"strings"
	"time"

	"estate-backend/config"
	"estate-backend/middleware"
	"estate-backend/models"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login checks the admin credentials and returns a 24h JWT.
func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	claims := middleware.AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTSecret())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "full_name": admin.FullName, "username": admin.Username},
	})
}

// ChangePassword lets the signed-in admin rotate their password.
func ChangePassword(c *gin.Context) {
	adminID, ok := c.Get("adminId")
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(payload.NewPassword) < 8 {
		utils.JSONError(c, http.StatusUnprocessableEntity, "new password must be at least 8 characters")
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid session")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.CurrentPassword)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := config.DB.Model(&admin).Update("password", string(hash)).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update password")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}
