package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

const refreshTokenTTL = 24 * time.Hour

// Login authenticates by email/password and issues an access token plus an
// http-only refresh token cookie. Only activated accounts may log in.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			utils.Respond(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}

		if !utils.CheckPasswordHash(input.Password, user.Password) {
			utils.Respond(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}

		if user.Status != models.UserStatusActivated {
			utils.Respond(c, http.StatusForbidden, "Account is not activated", nil)
			return
		}

		token, err := utils.CreateToken(user.ID, user.Role)
		if err != nil {
			slog.Error("auth.login create token", "err", err)
			utils.ServerError(c, err)
			return
		}

		refreshToken, hashedToken, err := utils.GenerateRefreshToken()
		if err != nil {
			slog.Error("auth.login generate refresh token", "err", err)
			utils.ServerError(c, err)
			return
		}

		expiresAt := time.Now().Add(refreshTokenTTL)
		if err := utils.SaveRefreshToken(db, user.ID, hashedToken, expiresAt); err != nil {
			slog.Error("auth.login save refresh token", "err", err)
			utils.ServerError(c, err)
			return
		}

		c.SetCookie("refresh_token", refreshToken, int(time.Until(expiresAt).Seconds()), "/", "", false, true)

		utils.Respond(c, http.StatusOK, "Logged in", gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// Refresh exchanges a valid refresh cookie for a new access token.
func Refresh(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil {
			utils.Respond(c, http.StatusUnauthorized, "Refresh token required", nil)
			return
		}

		rt, err := utils.ValidateRefreshToken(db, refreshToken)
		if err != nil {
			utils.Respond(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
			return
		}

		var user models.User
		if err := db.First(&user, rt.UserID).Error; err != nil {
			utils.Respond(c, http.StatusUnauthorized, "Account no longer exists", nil)
			return
		}

		if user.Status != models.UserStatusActivated {
			utils.Respond(c, http.StatusForbidden, "Account is not activated", nil)
			return
		}

		token, err := utils.CreateToken(user.ID, user.Role)
		if err != nil {
			slog.Error("auth.refresh create token", "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "Token refreshed", gin.H{"token": token})
	}
}

// Logout invalidates the refresh token and clears the cookie.
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil {
			utils.Respond(c, http.StatusBadRequest, "Refresh token required", nil)
			return
		}

		if err := utils.DeleteRefreshToken(db, refreshToken); err != nil {
			slog.Error("auth.logout delete refresh token", "err", err)
			utils.ServerError(c, err)
			return
		}

		c.SetCookie("refresh_token", "", -1, "/", "", false, true)
		utils.Respond(c, http.StatusOK, "Logged out", nil)
	}
}
