package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/middlewares"
	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

// ListUsers - manager lists accounts, optionally filtered by role.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.User{}).Order("created_at DESC")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		var users []models.User
		page, err := utils.Paginate(c, query, &users)
		if err != nil {
			slog.Error("user.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

// CreateUser - manager registers a new employee. Accounts start unverified
// and must be activated before they can log in.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FullName  string `json:"fullname" binding:"required"`
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=6"`
			Phone     string `json:"phone"`
			Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
			BirthDate string `json:"birth_date"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			utils.Respond(c, http.StatusBadRequest, "Email already registered", nil)
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			slog.Error("user.create hash password", "err", err)
			utils.ServerError(c, err)
			return
		}

		user := models.User{
			FullName: input.FullName,
			Email:    input.Email,
			Password: hashed,
			Phone:    input.Phone,
			Gender:   input.Gender,
			Status:   models.UserStatusUnverified,
			Role:     models.UserRoleEmployee,
		}
		if user.Gender == "" {
			user.Gender = models.UserGenderOther
		}
		if input.BirthDate != "" {
			birth, err := time.Parse("2006-01-02", input.BirthDate)
			if err != nil {
				utils.Respond(c, http.StatusBadRequest, "birth_date must be YYYY-MM-DD", nil)
				return
			}
			user.BirthDate = &birth
		}

		if err := db.Create(&user).Error; err != nil {
			slog.Error("user.create", "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusCreated, "User created", user)
	}
}

// Me returns the authenticated account.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			utils.Respond(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", user)
	}
}

func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "User not found", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", user)
	}
}

// UpdateUser - manager patches profile fields, status and role.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FullName  *string `json:"fullname"`
			Phone     *string `json:"phone"`
			BirthDate *string `json:"birth_date"`
			Gender    *string `json:"gender" binding:"omitempty,oneof=male female other"`
			Status    *string `json:"status" binding:"omitempty,oneof=blocked activated unverified"`
			Role      *string `json:"role" binding:"omitempty,oneof=manager employee"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "User not found", nil)
			return
		}

		if input.FullName != nil {
			user.FullName = *input.FullName
		}
		if input.Phone != nil {
			user.Phone = *input.Phone
		}
		if input.Gender != nil {
			user.Gender = *input.Gender
		}
		if input.Status != nil {
			user.Status = *input.Status
		}
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.BirthDate != nil {
			birth, err := time.Parse("2006-01-02", *input.BirthDate)
			if err != nil {
				utils.Respond(c, http.StatusBadRequest, "birth_date must be YYYY-MM-DD", nil)
				return
			}
			user.BirthDate = &birth
		}

		if err := db.Save(&user).Error; err != nil {
			slog.Error("user.update", "id", user.ID, "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "User updated", user)
	}
}

// ChangePassword lets the authenticated user rotate their own password.
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			utils.Respond(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		var input struct {
			OldPassword string `json:"old_password" binding:"required"`
			NewPassword string `json:"new_password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		if !utils.CheckPasswordHash(input.OldPassword, user.Password) {
			utils.Respond(c, http.StatusBadRequest, "Old password is incorrect", nil)
			return
		}

		hashed, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			slog.Error("user.change_password hash", "err", err)
			utils.ServerError(c, err)
			return
		}

		if err := db.Model(user).Update("password", hashed).Error; err != nil {
			slog.Error("user.change_password", "id", user.ID, "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "Password changed", nil)
	}
}

// ResetPassword - manager resets an employee's password to a random one and
// notifies them by mail. Delivery is asynchronous and best effort: the
// request succeeds even when the notification later fails.
func ResetPassword(db *gorm.DB, mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Respond(c, http.StatusNotFound, "User not found", nil)
				return
			}
			slog.Error("user.reset_password load", "err", err)
			utils.ServerError(c, err)
			return
		}

		newPassword, err := utils.RandomPassword(12)
		if err != nil {
			slog.Error("user.reset_password generate", "err", err)
			utils.ServerError(c, err)
			return
		}

		hashed, err := utils.HashPassword(newPassword)
		if err != nil {
			slog.Error("user.reset_password hash", "err", err)
			utils.ServerError(c, err)
			return
		}

		if err := db.Model(&user).Update("password", hashed).Error; err != nil {
			slog.Error("user.reset_password", "id", user.ID, "err", err)
			utils.ServerError(c, err)
			return
		}

		if mailer != nil {
			mailer.Enqueue(utils.Mail{
				To:      user.Email,
				Subject: "Password reset notification",
				Body: fmt.Sprintf("<p>Hello %s,</p><p>Your password has been reset. Your new password is: <b>%s</b></p>",
					user.FullName, newPassword),
			})
		}

		utils.Respond(c, http.StatusOK, "Password reset", nil)
	}
}
