package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

// Standalone item routes mirror the order-scoped ones for clients that
// address items directly. The owning order must still be pending.

func CreateOrderItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			OrderID  uint   `json:"order" binding:"required"`
			Type     string `json:"type" binding:"required,oneof=dish combo"`
			DishID   *uint  `json:"dish_id"`
			ComboID  *uint  `json:"combo_id"`
			Quantity int    `json:"quantity" binding:"required,min=1"`
			Note     string `json:"note"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var order models.Order
		if err := db.First(&order, input.OrderID).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Cannot add items to a processed order", nil)
			return
		}

		item := models.OrderItem{
			OrderID:  order.ID,
			Type:     input.Type,
			DishID:   input.DishID,
			ComboID:  input.ComboID,
			Quantity: input.Quantity,
			Note:     input.Note,
		}
		if err := db.Create(&item).Error; err != nil {
			if isItemValidationErr(err) {
				utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
				return
			}
			slog.Error("order_item.create", "order", order.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, "Order item created", item)
	}
}

func UpdateOrderItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
			Note     *string `json:"note"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var item models.OrderItem
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order item not found", nil)
			return
		}

		var order models.Order
		if err := db.First(&order, item.OrderID).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Cannot update items of a processed order", nil)
			return
		}

		if input.Quantity != nil {
			item.Quantity = *input.Quantity
		}
		if input.Note != nil {
			item.Note = *input.Note
		}

		if err := db.Save(&item).Error; err != nil {
			slog.Error("order_item.update", "item", item.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Order item updated", item)
	}
}

func DeleteOrderItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.OrderItem
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order item not found", nil)
			return
		}

		var order models.Order
		if err := db.First(&order, item.OrderID).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Cannot remove items from a processed order", nil)
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			slog.Error("order_item.delete", "item", item.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Order item removed", nil)
	}
}
