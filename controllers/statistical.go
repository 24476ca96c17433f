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

func parseDateRange(c *gin.Context) (string, string, bool) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		utils.Respond(c, http.StatusBadRequest, "start_date and end_date are required", nil)
		return "", "", false
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		utils.Respond(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD", nil)
		return "", "", false
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		utils.Respond(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD", nil)
		return "", "", false
	}
	if from.After(to) {
		utils.Respond(c, http.StatusBadRequest, "start_date must not be after end_date", nil)
		return "", "", false
	}
	return start, end, true
}

// Revenue sums settled bills per day over an inclusive date range.
func Revenue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		type dayRevenue struct {
			Date    string  `json:"date"`
			Revenue float64 `json:"revenue"`
			Bills   int64   `json:"bills"`
		}

		var byDate []dayRevenue
		err := db.Model(&models.Bill{}).
			Select("DATE(bills.created_at) AS date, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS bills").
			Where("DATE(bills.created_at) BETWEEN ? AND ?", start, end).
			Group("DATE(bills.created_at)").
			Order("date ASC").
			Scan(&byDate).Error
		if err != nil {
			slog.Error("statistical.revenue", "err", err)
			utils.ServerError(c, err)
			return
		}

		var totalRevenue float64
		var totalBills int64
		for _, d := range byDate {
			totalRevenue += d.Revenue
			totalBills += d.Bills
		}

		utils.Respond(c, http.StatusOK, "OK", gin.H{
			"from":            start,
			"to":              end,
			"total_revenue":   totalRevenue,
			"total_bills":     totalBills,
			"number_of_days":  len(byDate),
			"revenue_by_date": byDate,
		})
	}
}

type soldRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type soldByDateRow struct {
	Date     string `json:"date"`
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// DishAndComboSold reports units sold per dish and per combo over a date
// range. A unit counts once its order is billed, so cancelled and still-open
// orders are excluded.
func DishAndComboSold(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		billedItems := func() *gorm.DB {
			return db.Model(&models.OrderItem{}).
				Joins("JOIN orders ON orders.id = order_items.order_id").
				Joins("JOIN bills ON bills.order_id = orders.id").
				Where("DATE(bills.created_at) BETWEEN ? AND ?", start, end)
		}

		var dishesByDate []soldByDateRow
		err := billedItems().
			Joins("JOIN dishes ON dishes.id = order_items.dish_id").
			Select("DATE(bills.created_at) AS date, dishes.id AS id, dishes.name AS name, SUM(order_items.quantity) AS quantity").
			Where("order_items.dish_id IS NOT NULL").
			Group("DATE(bills.created_at), dishes.id, dishes.name").
			Order("date DESC, quantity DESC").
			Scan(&dishesByDate).Error
		if err != nil {
			slog.Error("statistical.sold dishes", "err", err)
			utils.ServerError(c, err)
			return
		}

		var combosByDate []soldByDateRow
		err = billedItems().
			Joins("JOIN combos ON combos.id = order_items.combo_id").
			Select("DATE(bills.created_at) AS date, combos.id AS id, combos.name AS name, SUM(order_items.quantity) AS quantity").
			Where("order_items.combo_id IS NOT NULL").
			Group("DATE(bills.created_at), combos.id, combos.name").
			Order("date DESC, quantity DESC").
			Scan(&combosByDate).Error
		if err != nil {
			slog.Error("statistical.sold combos", "err", err)
			utils.ServerError(c, err)
			return
		}

		var topDishes []soldRow
		err = billedItems().
			Joins("JOIN dishes ON dishes.id = order_items.dish_id").
			Select("dishes.id AS id, dishes.name AS name, SUM(order_items.quantity) AS quantity").
			Where("order_items.dish_id IS NOT NULL").
			Group("dishes.id, dishes.name").
			Order("quantity DESC").
			Limit(5).
			Scan(&topDishes).Error
		if err != nil {
			slog.Error("statistical.sold top dishes", "err", err)
			utils.ServerError(c, err)
			return
		}

		var topCombos []soldRow
		err = billedItems().
			Joins("JOIN combos ON combos.id = order_items.combo_id").
			Select("combos.id AS id, combos.name AS name, SUM(order_items.quantity) AS quantity").
			Where("order_items.combo_id IS NOT NULL").
			Group("combos.id, combos.name").
			Order("quantity DESC").
			Limit(5).
			Scan(&topCombos).Error
		if err != nil {
			slog.Error("statistical.sold top combos", "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "OK", gin.H{
			"from":           start,
			"to":             end,
			"dishes_by_date": dishesByDate,
			"combos_by_date": combosByDate,
			"top_5_dishes":   topDishes,
			"top_5_combos":   topCombos,
		})
	}
}

// EmployeePerformance counts orders opened and bills settled per employee
// over a date range, with a per-day breakdown.
func EmployeePerformance(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := parseDateRange(c)
		if !ok {
			return
		}

		type employeeTotals struct {
			EmployeeID   uint    `json:"employee_id"`
			EmployeeCode string  `json:"employee_code"`
			FullName     string  `json:"full_name"`
			Orders       int64   `json:"orders"`
			Bills        int64   `json:"bills"`
			Revenue      float64 `json:"revenue"`
		}

		type employeeByDate struct {
			Date       string `json:"date"`
			EmployeeID uint   `json:"employee_id"`
			Orders     int64  `json:"orders"`
			Bills      int64  `json:"bills"`
		}

		employee := c.Query("employee")
		// An order counts for the range once it is billed in the range;
		// pending and cancelled orders stay out of the rollup.
		ordersQuery := func() *gorm.DB {
			q := db.Model(&models.Order{}).
				Joins("JOIN bills ON bills.order_id = orders.id").
				Joins("JOIN users ON users.id = orders.employee_id").
				Where("DATE(bills.created_at) BETWEEN ? AND ?", start, end)
			if employee != "" {
				q = q.Where("orders.employee_id = ?", employee)
			}
			return q
		}
		billsQuery := func() *gorm.DB {
			q := db.Model(&models.Bill{}).
				Joins("JOIN users ON users.id = bills.created_by_id").
				Where("DATE(bills.created_at) BETWEEN ? AND ?", start, end)
			if employee != "" {
				q = q.Where("bills.created_by_id = ?", employee)
			}
			return q
		}

		var orderTotals []employeeTotals
		err := ordersQuery().
			Select("users.id AS employee_id, users.employee_code, users.full_name, COUNT(*) AS orders").
			Group("users.id, users.employee_code, users.full_name").
			Scan(&orderTotals).Error
		if err != nil {
			slog.Error("statistical.employee orders", "err", err)
			utils.ServerError(c, err)
			return
		}

		var billTotals []employeeTotals
		err = billsQuery().
			Select("users.id AS employee_id, users.employee_code, users.full_name, COUNT(*) AS bills, COALESCE(SUM(bills.total_amount), 0) AS revenue").
			Group("users.id, users.employee_code, users.full_name").
			Scan(&billTotals).Error
		if err != nil {
			slog.Error("statistical.employee bills", "err", err)
			utils.ServerError(c, err)
			return
		}

		merged := map[uint]*employeeTotals{}
		order := []uint{}
		for _, row := range orderTotals {
			r := row
			merged[r.EmployeeID] = &r
			order = append(order, r.EmployeeID)
		}
		for _, row := range billTotals {
			if existing, found := merged[row.EmployeeID]; found {
				existing.Bills = row.Bills
				existing.Revenue = row.Revenue
				continue
			}
			r := row
			merged[r.EmployeeID] = &r
			order = append(order, r.EmployeeID)
		}
		totals := make([]employeeTotals, 0, len(order))
		for _, id := range order {
			totals = append(totals, *merged[id])
		}

		var ordersByDate []employeeByDate
		err = ordersQuery().
			Select("DATE(bills.created_at) AS date, users.id AS employee_id, COUNT(*) AS orders").
			Group("DATE(bills.created_at), users.id").
			Order("date ASC").
			Scan(&ordersByDate).Error
		if err != nil {
			slog.Error("statistical.employee orders by date", "err", err)
			utils.ServerError(c, err)
			return
		}

		var billsByDate []employeeByDate
		err = billsQuery().
			Select("DATE(bills.created_at) AS date, users.id AS employee_id, COUNT(*) AS bills").
			Group("DATE(bills.created_at), users.id").
			Order("date ASC").
			Scan(&billsByDate).Error
		if err != nil {
			slog.Error("statistical.employee bills by date", "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "OK", gin.H{
			"from":           start,
			"to":             end,
			"employees":      totals,
			"orders_by_date": ordersByDate,
			"bills_by_date":  billsByDate,
		})
	}
}
