package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/middlewares"
	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func ListBills(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Bill{}).
			Preload("Order").
			Preload("CreatedBy").
			Order("created_at DESC")

		if orderID := c.Query("order"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if createdBy := c.Query("created_by"); createdBy != "" {
			query = query.Where("created_by_id = ?", createdBy)
		}
		if date := c.Query("created_at"); date != "" {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				utils.Respond(c, http.StatusBadRequest, "created_at must be YYYY-MM-DD", nil)
				return
			}
			query = query.Where("DATE(bills.created_at) = ?", date)
		}

		var bills []models.Bill
		page, err := utils.Paginate(c, query, &bills)
		if err != nil {
			slog.Error("bill.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

func GetBill(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bill models.Bill
		err := db.Preload("Order").
			Preload("Order.OrderItems").
			Preload("Order.OrderItems.Dish").
			Preload("Order.OrderItems.Combo").
			Preload("CreatedBy").
			First(&bill, c.Param("id")).Error
		if err != nil {
			utils.Respond(c, http.StatusNotFound, "Bill not found", nil)
			return
		}
		utils.Respond(c, http.StatusOK, "OK", bill)
	}
}

// CreateBill settles a pending order. Only the employee who opened the order
// may bill it. The status flip and the bill insert commit together, and the
// flip is conditional on the order still being pending so a second request
// loses instead of writing a duplicate bill.
func CreateBill(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middlewares.CurrentUser(c)
		if !ok {
			utils.Respond(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}

		var input struct {
			OrderID uint `json:"order" binding:"required"`
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
			utils.Respond(c, http.StatusBadRequest, "Order is already settled or cancelled", nil)
			return
		}

		if order.EmployeeID != user.ID {
			utils.Respond(c, http.StatusForbidden, "Only the employee who opened the order can bill it", nil)
			return
		}

		total, err := models.OrderTotal(db, order.ID)
		if err != nil {
			slog.Error("bill.total", "order", order.ID, "err", err)
			utils.ServerError(c, err)
			return
		}

		bill := models.Bill{
			OrderID:     order.ID,
			TotalAmount: total,
			CreatedByID: user.ID,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
				Updates(map[string]interface{}{
					"status":      models.OrderStatusCompleted,
					"finished_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return tx.Create(&bill).Error
		})
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.Respond(c, http.StatusBadRequest, "Order is already settled or cancelled", nil)
				return
			}
			slog.Error("bill.create", "order", order.ID, "err", err)
			utils.ServerError(c, err)
			return
		}

		var created models.Bill
		if err := db.Preload("Order").Preload("CreatedBy").First(&created, bill.ID).Error; err != nil {
			slog.Error("bill.create reload", "id", bill.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, "Bill created", created)
	}
}
