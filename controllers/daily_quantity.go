package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func ListDailyQuantities(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.DailyQuantity{}).
			Preload("Dish").
			Preload("Combo").
			Order("date DESC")

		if date := c.Query("date"); date != "" {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				utils.Respond(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
				return
			}
			query = query.Where("date = ?", date)
		}
		if dishID := c.Query("dish_id"); dishID != "" {
			query = query.Where("dish_id = ?", dishID)
		}
		if comboID := c.Query("combo_id"); comboID != "" {
			query = query.Where("combo_id = ?", comboID)
		}

		var quantities []models.DailyQuantity
		page, err := utils.Paginate(c, query, &quantities)
		if err != nil {
			slog.Error("daily_quantity.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

// UpsertDailyQuantity creates or replaces the cap for (date, dish) or
// (date, combo).
func UpsertDailyQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Date     string `json:"date" binding:"required"`
			Type     string `json:"type" binding:"required,oneof=dish combo"`
			DishID   *uint  `json:"dish_id"`
			ComboID  *uint  `json:"combo_id"`
			Quantity *int   `json:"quantity" binding:"required,min=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			utils.Respond(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}

		switch input.Type {
		case models.DailyQuantityTypeDish:
			if input.DishID == nil || input.ComboID != nil {
				utils.Respond(c, http.StatusBadRequest, "type 'dish' requires dish_id and no combo_id", nil)
				return
			}
			var dish models.Dish
			if err := db.First(&dish, *input.DishID).Error; err != nil {
				utils.Respond(c, http.StatusNotFound, "Dish not found", nil)
				return
			}
		case models.DailyQuantityTypeCombo:
			if input.ComboID == nil || input.DishID != nil {
				utils.Respond(c, http.StatusBadRequest, "type 'combo' requires combo_id and no dish_id", nil)
				return
			}
			var combo models.Combo
			if err := db.First(&combo, *input.ComboID).Error; err != nil {
				utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
				return
			}
		}

		query := db.Where("date = ?", input.Date)
		if input.DishID != nil {
			query = query.Where("dish_id = ?", *input.DishID)
		} else {
			query = query.Where("combo_id = ?", *input.ComboID)
		}

		var quota models.DailyQuantity
		err := query.First(&quota).Error
		switch {
		case err == nil:
			quota.Quantity = *input.Quantity
			if err := db.Save(&quota).Error; err != nil {
				slog.Error("daily_quantity.upsert save", "err", err)
				utils.ServerError(c, err)
				return
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			quota = models.DailyQuantity{
				Date:     input.Date,
				Type:     input.Type,
				DishID:   input.DishID,
				ComboID:  input.ComboID,
				Quantity: *input.Quantity,
			}
			if err := db.Create(&quota).Error; err != nil {
				slog.Error("daily_quantity.upsert create", "err", err)
				utils.ServerError(c, err)
				return
			}
		default:
			slog.Error("daily_quantity.upsert lookup", "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "Daily quantity saved", quota)
	}
}

// RemainingDailyQuantity reports how many units are still sellable for a
// dish or combo on a date. The cap is informational: it is not enforced when
// order items are created.
func RemainingDailyQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
		if _, err := time.Parse("2006-01-02", date); err != nil {
			utils.Respond(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}

		dishID := c.Query("dish_id")
		comboID := c.Query("combo_id")
		if (dishID == "") == (comboID == "") {
			utils.Respond(c, http.StatusBadRequest, "exactly one of dish_id or combo_id is required", nil)
			return
		}

		sold, err := soldOnDate(db, date, dishID, comboID)
		if err != nil {
			slog.Error("daily_quantity.remaining sold", "err", err)
			utils.ServerError(c, err)
			return
		}

		capQuery := db.Where("date = ?", date)
		if dishID != "" {
			capQuery = capQuery.Where("dish_id = ?", dishID)
		} else {
			capQuery = capQuery.Where("combo_id = ?", comboID)
		}

		data := gin.H{"date": date, "sold": sold, "cap": nil, "remaining": nil}

		var quota models.DailyQuantity
		err = capQuery.First(&quota).Error
		switch {
		case err == nil:
			remaining := int64(quota.Quantity) - sold
			if remaining < 0 {
				remaining = 0
			}
			data["cap"] = quota.Quantity
			data["remaining"] = remaining
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no cap row: cap and remaining stay null
		default:
			slog.Error("daily_quantity.remaining cap", "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "OK", data)
	}
}

// soldOnDate sums item quantities over non-deleted items of orders created
// on the date that are pending or completed. Cancelled orders release their
// quantities.
func soldOnDate(db *gorm.DB, date, dishID, comboID string) (int64, error) {
	query := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("DATE(orders.created_at) = ?", date).
		Where("orders.status IN ?", []string{models.OrderStatusPending, models.OrderStatusCompleted})

	if dishID != "" {
		query = query.Where("order_items.dish_id = ?", dishID)
	} else {
		query = query.Where("order_items.combo_id = ?", comboID)
	}

	var sold int64
	err := query.Select("COALESCE(SUM(order_items.quantity), 0)").Scan(&sold).Error
	return sold, err
}
