package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func ListDishes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Dish{}).Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var dishes []models.Dish
		page, err := utils.Paginate(c, query, &dishes)
		if err != nil {
			slog.Error("dish.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

func GetDish(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dish models.Dish
		if err := db.First(&dish, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dish not found", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", dish)
	}
}

func CreateDish(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name   string  `json:"name" binding:"required"`
			Image  string  `json:"image"`
			Price  float64 `json:"price" binding:"required,gt=0"`
			Status string  `json:"status" binding:"omitempty,oneof=selling stop_selling"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		dish := models.Dish{
			Name:   input.Name,
			Image:  input.Image,
			Price:  input.Price,
			Status: input.Status,
		}
		if dish.Status == "" {
			dish.Status = models.DishStatusSelling
		}

		if err := db.Create(&dish).Error; err != nil {
			slog.Error("dish.create", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, "Dish created", dish)
	}
}

func UpdateDish(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name   *string  `json:"name"`
			Image  *string  `json:"image"`
			Price  *float64 `json:"price" binding:"omitempty,gt=0"`
			Status *string  `json:"status" binding:"omitempty,oneof=selling stop_selling"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var dish models.Dish
		if err := db.First(&dish, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dish not found", nil)
			return
		}

		if input.Name != nil {
			dish.Name = *input.Name
		}
		if input.Image != nil {
			dish.Image = *input.Image
		}
		if input.Price != nil {
			dish.Price = *input.Price
		}
		if input.Status != nil {
			dish.Status = *input.Status
		}

		if err := db.Save(&dish).Error; err != nil {
			slog.Error("dish.update", "id", dish.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Dish updated", dish)
	}
}

// DeleteDish soft-deletes; billed history keeps pricing from the dish row.
func DeleteDish(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dish models.Dish
		if err := db.First(&dish, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dish not found", nil)
			return
		}

		if err := db.Delete(&dish).Error; err != nil {
			slog.Error("dish.delete", "id", dish.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Dish deleted", dish)
	}
}
