package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func ListDiningTables(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.DiningTable{}).Order("code ASC")

		var tables []models.DiningTable
		page, err := utils.Paginate(c, query, &tables)
		if err != nil {
			slog.Error("dining_table.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

func GetDiningTable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var table models.DiningTable
		if err := db.First(&table, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dining table not found", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", table)
	}
}

func CreateDiningTable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Code          string `json:"code" binding:"required"`
			NumberOfSeats int    `json:"number_of_seats" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		// Code must be unique among non-deleted tables.
		var count int64
		if err := db.Model(&models.DiningTable{}).Where("code = ?", input.Code).Count(&count).Error; err != nil {
			slog.Error("dining_table.create code check", "err", err)
			utils.ServerError(c, err)
			return
		}
		if count > 0 {
			utils.Respond(c, http.StatusBadRequest, "Table code already exists", nil)
			return
		}

		table := models.DiningTable{
			Code:          input.Code,
			NumberOfSeats: input.NumberOfSeats,
		}
		if err := db.Create(&table).Error; err != nil {
			slog.Error("dining_table.create", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, "Dining table created", table)
	}
}

func UpdateDiningTable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Code          *string `json:"code"`
			NumberOfSeats *int    `json:"number_of_seats" binding:"omitempty,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var table models.DiningTable
		if err := db.First(&table, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dining table not found", nil)
			return
		}

		if input.Code != nil && *input.Code != table.Code {
			var count int64
			if err := db.Model(&models.DiningTable{}).Where("code = ?", *input.Code).Count(&count).Error; err != nil {
				slog.Error("dining_table.update code check", "id", table.ID, "err", err)
				utils.ServerError(c, err)
				return
			}
			if count > 0 {
				utils.Respond(c, http.StatusBadRequest, "Table code already exists", nil)
				return
			}
			table.Code = *input.Code
		}
		if input.NumberOfSeats != nil {
			table.NumberOfSeats = *input.NumberOfSeats
		}

		if err := db.Save(&table).Error; err != nil {
			slog.Error("dining_table.update", "id", table.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Dining table updated", table)
	}
}

func DeleteDiningTable(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var table models.DiningTable
		if err := db.First(&table, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dining table not found", nil)
			return
		}

		if err := db.Delete(&table).Error; err != nil {
			slog.Error("dining_table.delete", "id", table.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Dining table deleted", table)
	}
}
