package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/middlewares"
	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

type orderItemInput struct {
	Type     string `json:"type" binding:"required,oneof=dish combo"`
	DishID   *uint  `json:"dish_id"`
	ComboID  *uint  `json:"combo_id"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Note     string `json:"note"`
}

func (in orderItemInput) toModel(orderID uint) models.OrderItem {
	return models.OrderItem{
		OrderID:  orderID,
		Type:     in.Type,
		DishID:   in.DishID,
		ComboID:  in.ComboID,
		Quantity: in.Quantity,
		Note:     in.Note,
	}
}

func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{}).
			Preload("DiningTable").
			Preload("Employee").
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if name := c.Query("customer_name"); name != "" {
			query = query.Where("LOWER(customer_name) LIKE LOWER(?)", "%"+name+"%")
		}
		if phone := c.Query("customer_phone"); phone != "" {
			query = query.Where("customer_phone = ?", phone)
		}
		if table := c.Query("dining_table"); table != "" {
			query = query.Where("dining_table_id = ?", table)
		}
		if employee := c.Query("employee"); employee != "" {
			query = query.Where("employee_id = ?", employee)
		}
		if date := c.Query("date"); date != "" {
			query = query.Where("DATE(orders.created_at) = ?", date)
		}

		var orders []models.Order
		page, err := utils.Paginate(c, query, &orders)
		if err != nil {
			slog.Error("order.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		err := db.Preload("DiningTable").
			Preload("Employee").
			Preload("OrderItems").
			Preload("OrderItems.Dish").
			Preload("OrderItems.Combo").
			First(&order, c.Param("id")).Error
		if err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", order)
	}
}

// CreateOrder opens a pending order for a table and bulk-inserts its initial
// items. A table can hold at most one pending order, and the order plus its
// items persist atomically.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			utils.Respond(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		var input struct {
			CustomerName  string           `json:"customer_name" binding:"required"`
			CustomerPhone string           `json:"customer_phone" binding:"required"`
			DiningTable   uint             `json:"dining_table" binding:"required"`
			Note          string           `json:"note"`
			OrderItems    []orderItemInput `json:"order_items" binding:"dive"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var table models.DiningTable
		if err := db.First(&table, input.DiningTable).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dining table not found", nil)
			return
		}

		var pending int64
		if err := db.Model(&models.Order{}).
			Where("dining_table_id = ? AND status = ?", table.ID, models.OrderStatusPending).
			Count(&pending).Error; err != nil {
			slog.Error("order.create pending check", "table", table.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		if pending > 0 {
			utils.Respond(c, http.StatusBadRequest, "Table already has a pending order", nil)
			return
		}

		order := models.Order{
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			DiningTableID: table.ID,
			EmployeeID:    user.ID,
			Status:        models.OrderStatusPending,
			Note:          input.Note,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for _, in := range input.OrderItems {
				item := in.toModel(order.ID)
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if isItemValidationErr(err) {
				utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
				return
			}
			slog.Error("order.create", "err", err)
			utils.ServerError(c, err)
			return
		}

		var created models.Order
		if err := db.Preload("DiningTable").Preload("Employee").Preload("OrderItems").First(&created, order.ID).Error; err != nil {
			slog.Error("order.create reload", "id", order.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, "Order created", created)
	}
}

// UpdateOrder patches customer fields. Orders accept edits only while pending.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CustomerName  *string `json:"customer_name"`
			CustomerPhone *string `json:"customer_phone"`
			Note          *string `json:"note"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Order is no longer pending", nil)
			return
		}

		if input.CustomerName != nil {
			order.CustomerName = *input.CustomerName
		}
		if input.CustomerPhone != nil {
			order.CustomerPhone = *input.CustomerPhone
		}
		if input.Note != nil {
			order.Note = *input.Note
		}

		if err := db.Save(&order).Error; err != nil {
			slog.Error("order.update", "id", order.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Order updated", order)
	}
}

// CancelOrder transitions pending -> cancelled with a single conditional
// update so two racing requests cannot both win.
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		res := db.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			slog.Error("order.cancel", "id", order.ID, "err", res.Error)
			utils.ServerError(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			utils.Respond(c, http.StatusBadRequest, "Order cannot be cancelled", nil)
			return
		}

		utils.Respond(c, http.StatusOK, "Order cancelled", nil)
	}
}

// AddOrderItem appends an item to a pending order.
func AddOrderItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input orderItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Cannot add items to a processed order", nil)
			return
		}

		item := input.toModel(order.ID)
		if err := db.Create(&item).Error; err != nil {
			if isItemValidationErr(err) {
				utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
				return
			}
			slog.Error("order.add_item", "order", order.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Item added", item)
	}
}

// UpdateOrderItemInOrder changes quantity/note of an item through the
// order-scoped route; the item must belong to the addressed order.
func UpdateOrderItemInOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
			Note     *string `json:"note"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Cannot update items of a processed order", nil)
			return
		}

		var item models.OrderItem
		if err := db.First(&item, c.Param("item_id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order item not found", nil)
			return
		}

		if item.OrderID != order.ID {
			utils.Respond(c, http.StatusBadRequest, "Item does not belong to the order", nil)
			return
		}

		if input.Quantity != nil {
			item.Quantity = *input.Quantity
		}
		if input.Note != nil {
			item.Note = *input.Note
		}

		if err := db.Save(&item).Error; err != nil {
			slog.Error("order.update_item", "order", order.ID, "item", item.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Item updated", item)
	}
}

// RemoveOrderItemFromOrder soft-deletes an item through the order-scoped route.
func RemoveOrderItemFromOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order not found", nil)
			return
		}

		if order.Status != models.OrderStatusPending {
			utils.Respond(c, http.StatusBadRequest, "Cannot remove items from a processed order", nil)
			return
		}

		var item models.OrderItem
		if err := db.First(&item, c.Param("item_id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Order item not found", nil)
			return
		}

		if item.OrderID != order.ID {
			utils.Respond(c, http.StatusBadRequest, "Item does not belong to the order", nil)
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			slog.Error("order.remove_item", "order", order.ID, "item", item.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Item removed", nil)
	}
}

func isItemValidationErr(err error) bool {
	return errors.Is(err, models.ErrItemProductMissing) ||
		errors.Is(err, models.ErrItemProductAmbiguous) ||
		errors.Is(err, models.ErrItemTypeMismatch) ||
		errors.Is(err, models.ErrItemQuantity)
}
