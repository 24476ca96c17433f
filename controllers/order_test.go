package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
)

func TestCreateOrderWithItems(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")
	dish := createTestDish(t, db, "Pho", 45000)
	combo := createTestCombo(t, db)

	w, env := doJSON(t, r, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"customer_name":  "Nguyen Van A",
		"customer_phone": "0900000001",
		"dining_table":   table.ID,
		"order_items": []map[string]interface{}{
			{"type": "dish", "dish_id": dish.ID, "quantity": 2},
			{"type": "combo", "combo_id": combo.ID, "quantity": 1},
		},
	})
	requireStatus(t, w, http.StatusCreated)

	var created models.Order
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, models.OrderStatusPending, created.Status)
	require.Len(t, created.OrderItems, 2)
}

func TestCreateOrderTableBusy(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")

	require.NoError(t, db.Create(&models.Order{
		CustomerName:  "First",
		CustomerPhone: "0900000001",
		DiningTableID: table.ID,
		EmployeeID:    user.ID,
		Status:        models.OrderStatusPending,
	}).Error)

	w, _ := doJSON(t, r, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"customer_name":  "Second",
		"customer_phone": "0900000002",
		"dining_table":   table.ID,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestCreateOrderUnknownTable(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)

	w, _ := doJSON(t, r, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"customer_name":  "Ghost",
		"customer_phone": "0900000001",
		"dining_table":   999,
	})
	requireStatus(t, w, http.StatusNotFound)
}

func TestCancelOrderOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")

	order := models.Order{
		CustomerName:  "Nguyen Van A",
		CustomerPhone: "0900000001",
		DiningTableID: table.ID,
		EmployeeID:    user.ID,
		Status:        models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	path := fmt.Sprintf("/api/orders/%d/cancel", order.ID)
	w, _ := doJSON(t, r, http.MethodPatch, path, token, nil)
	requireStatus(t, w, http.StatusOK)

	w, _ = doJSON(t, r, http.MethodPatch, path, token, nil)
	requireStatus(t, w, http.StatusBadRequest)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.Equal(t, models.OrderStatusCancelled, reloaded.Status)
}

func TestCancelledOrderRejectsMutations(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")
	dish := createTestDish(t, db, "Pho", 45000)

	order := models.Order{
		CustomerName:  "Nguyen Van A",
		CustomerPhone: "0900000001",
		DiningTableID: table.ID,
		EmployeeID:    user.ID,
		Status:        models.OrderStatusCancelled,
	}
	require.NoError(t, db.Create(&order).Error)

	w, _ := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d", order.ID), token, map[string]interface{}{
		"note": "late edit",
	})
	requireStatus(t, w, http.StatusBadRequest)

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/order-items", order.ID), token, map[string]interface{}{
		"type":     "dish",
		"dish_id":  dish.ID,
		"quantity": 1,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestAddItemRejectsAmbiguousProduct(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")
	dish := createTestDish(t, db, "Pho", 45000)
	combo := createTestCombo(t, db)

	order := models.Order{
		CustomerName:  "Nguyen Van A",
		CustomerPhone: "0900000001",
		DiningTableID: table.ID,
		EmployeeID:    user.ID,
		Status:        models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/order-items", order.ID), token, map[string]interface{}{
		"type":     "dish",
		"dish_id":  dish.ID,
		"combo_id": combo.ID,
		"quantity": 1,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestOrderScopedItemMustBelongToOrder(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	tableA := createTestTable(t, db, "T01")
	tableB := createTestTable(t, db, "T02")
	dish := createTestDish(t, db, "Pho", 45000)

	orderA := models.Order{
		CustomerName: "A", CustomerPhone: "0900000001",
		DiningTableID: tableA.ID, EmployeeID: user.ID, Status: models.OrderStatusPending,
	}
	orderB := models.Order{
		CustomerName: "B", CustomerPhone: "0900000002",
		DiningTableID: tableB.ID, EmployeeID: user.ID, Status: models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&orderA).Error)
	require.NoError(t, db.Create(&orderB).Error)

	item := models.OrderItem{OrderID: orderB.ID, Type: models.OrderItemTypeDish, DishID: &dish.ID, Quantity: 1}
	require.NoError(t, db.Create(&item).Error)

	w, _ := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/orders/%d/order-items/%d", orderA.ID, item.ID), token,
		map[string]interface{}{"quantity": 3})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestCreateOrderSurfacesStorageFailure(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")

	// Break the orders table so the pending-order check errors instead of
	// counting zero rows.
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))

	w, _ := doJSON(t, r, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"customer_name":  "Guest",
		"customer_phone": "0900000001",
		"dining_table":   table.ID,
	})
	requireStatus(t, w, http.StatusInternalServerError)
}

func TestListOrdersFilters(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	table := createTestTable(t, db, "T01")

	require.NoError(t, db.Create(&models.Order{
		CustomerName: "Nguyen Van A", CustomerPhone: "0900000001",
		DiningTableID: table.ID, EmployeeID: user.ID, Status: models.OrderStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		CustomerName: "Tran Thi B", CustomerPhone: "0900000002",
		DiningTableID: table.ID, EmployeeID: user.ID, Status: models.OrderStatusCancelled,
	}).Error)

	w, env := doJSON(t, r, http.MethodGet, "/api/orders?status=pending", token, nil)
	requireStatus(t, w, http.StatusOK)
	var page struct {
		Items []models.Order `json:"items"`
		Total int64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.EqualValues(t, 1, page.Total)

	w, env = doJSON(t, r, http.MethodGet, "/api/orders?customer_name=nguyen", token, nil)
	requireStatus(t, w, http.StatusOK)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, "Nguyen Van A", page.Items[0].CustomerName)
}
