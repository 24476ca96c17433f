package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
)

func TestGetComboComputesPrice(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "staff@example.com", models.UserRoleEmployee)
	combo := createTestCombo(t, db)

	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/combos/%d", combo.ID), token, nil)
	requireStatus(t, w, http.StatusOK)

	var got models.Combo
	require.NoError(t, json.Unmarshal(env.Data, &got))
	// 40000 + 2 x 25000 - 10000
	require.InDelta(t, 80000, got.Price, 0.001)
}

func TestAddDishToComboRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	combo := createTestCombo(t, db)
	dish := createTestDish(t, db, "Fried rice", 35000)

	path := fmt.Sprintf("/api/combos/%d/dish", combo.ID)
	w, _ := doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{
		"dish_id":  dish.ID,
		"quantity": 1,
	})
	requireStatus(t, w, http.StatusOK)

	w, _ = doJSON(t, r, http.MethodPost, path, token, map[string]interface{}{
		"dish_id":  dish.ID,
		"quantity": 2,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestRemoveDishFromComboChangesPrice(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	combo := createTestCombo(t, db)

	var members []models.ComboDish
	require.NoError(t, db.Where("combo_id = ?", combo.ID).Find(&members).Error)
	require.Len(t, members, 2)

	w, _ := doJSON(t, r, http.MethodDelete,
		fmt.Sprintf("/api/combos/%d/dish/%d", combo.ID, members[1].DishID), token, nil)
	requireStatus(t, w, http.StatusOK)

	w, env := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/combos/%d", combo.ID), token, nil)
	requireStatus(t, w, http.StatusOK)

	var got models.Combo
	require.NoError(t, json.Unmarshal(env.Data, &got))
	// 40000 - 10000 after the 2 x 25000 member is gone
	require.InDelta(t, 30000, got.Price, 0.001)
}

func TestUpdateDishInComboRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	combo := createTestCombo(t, db)
	stranger := createTestDish(t, db, "Iced tea", 10000)

	w, _ := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/combos/%d/dish/%d", combo.ID, stranger.ID), token,
		map[string]interface{}{"quantity": 2})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestDeletedDishStaysOutOfCatalog(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	_, token := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	dish := createTestDish(t, db, "Pho", 45000)

	w, _ := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/dishes/%d", dish.ID), token, nil)
	requireStatus(t, w, http.StatusOK)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/dishes/%d", dish.ID), token, nil)
	requireStatus(t, w, http.StatusNotFound)

	// The row survives for billed history.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Dish{}).Where("id = ?", dish.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
