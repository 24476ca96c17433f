package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func comboWithDishes(db *gorm.DB) *gorm.DB {
	return db.Preload("ComboDishes", "deleted_at IS NULL").
		Preload("ComboDishes.Dish", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

func ListCombos(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := comboWithDishes(db).Model(&models.Combo{}).Order("created_at DESC")

		var combos []models.Combo
		page, err := utils.Paginate(c, query, &combos)
		if err != nil {
			slog.Error("combo.list", "err", err)
			utils.ServerError(c, err)
			return
		}
		for i := range combos {
			combos[i].Price = combos[i].ComputePrice()
		}
		utils.Respond(c, http.StatusOK, "OK", page)
	}
}

func GetCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var combo models.Combo
		if err := comboWithDishes(db).First(&combo, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
			return
		}
		combo.Price = combo.ComputePrice()
		utils.Respond(c, http.StatusOK, "OK", combo)
	}
}

func CreateCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string  `json:"name" binding:"required"`
			Image    string  `json:"image"`
			Discount float64 `json:"discount" binding:"omitempty,gte=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		combo := models.Combo{
			Name:     input.Name,
			Image:    input.Image,
			Discount: input.Discount,
		}
		if err := db.Create(&combo).Error; err != nil {
			slog.Error("combo.create", "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, "Combo created", combo)
	}
}

func UpdateCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     *string  `json:"name"`
			Image    *string  `json:"image"`
			Discount *float64 `json:"discount" binding:"omitempty,gte=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var combo models.Combo
		if err := db.First(&combo, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
			return
		}

		if input.Name != nil {
			combo.Name = *input.Name
		}
		if input.Image != nil {
			combo.Image = *input.Image
		}
		if input.Discount != nil {
			combo.Discount = *input.Discount
		}

		if err := db.Save(&combo).Error; err != nil {
			slog.Error("combo.update", "id", combo.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Combo updated", combo)
	}
}

func DeleteCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var combo models.Combo
		if err := db.First(&combo, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
			return
		}

		if err := db.Delete(&combo).Error; err != nil {
			slog.Error("combo.delete", "id", combo.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, "Combo deleted", combo)
	}
}

// AddDishToCombo registers a dish as a member of the combo.
func AddDishToCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			DishID   uint `json:"dish_id" binding:"required"`
			Quantity int  `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var combo models.Combo
		if err := db.First(&combo, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
			return
		}

		var dish models.Dish
		if err := db.First(&dish, input.DishID).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Dish not found", nil)
			return
		}

		var count int64
		if err := db.Model(&models.ComboDish{}).
			Where("combo_id = ? AND dish_id = ?", combo.ID, dish.ID).
			Count(&count).Error; err != nil {
			slog.Error("combo.add_dish membership check", "combo", combo.ID, "err", err)
			utils.ServerError(c, err)
			return
		}
		if count > 0 {
			utils.Respond(c, http.StatusBadRequest, "Dish is already part of the combo", nil)
			return
		}

		member := models.ComboDish{
			ComboID:  combo.ID,
			DishID:   dish.ID,
			Quantity: input.Quantity,
		}
		if err := db.Create(&member).Error; err != nil {
			slog.Error("combo.add_dish", "combo", combo.ID, "dish", dish.ID, "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "Dish added to combo", member)
	}
}

// UpdateDishInCombo changes the member quantity.
func UpdateDishInCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Quantity int `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Respond(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		var combo models.Combo
		if err := db.First(&combo, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
			return
		}

		var member models.ComboDish
		if err := db.Where("combo_id = ? AND dish_id = ?", combo.ID, c.Param("dish_id")).First(&member).Error; err != nil {
			utils.Respond(c, http.StatusBadRequest, "Dish is not part of the combo", nil)
			return
		}

		member.Quantity = input.Quantity
		if err := db.Save(&member).Error; err != nil {
			slog.Error("combo.update_dish", "combo", combo.ID, "dish", member.DishID, "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "Combo updated", member)
	}
}

// RemoveDishFromCombo soft-deletes the membership row.
func RemoveDishFromCombo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var combo models.Combo
		if err := db.First(&combo, c.Param("id")).Error; err != nil {
			utils.Respond(c, http.StatusNotFound, "Combo not found", nil)
			return
		}

		var member models.ComboDish
		if err := db.Where("combo_id = ? AND dish_id = ?", combo.ID, c.Param("dish_id")).First(&member).Error; err != nil {
			utils.Respond(c, http.StatusBadRequest, "Dish is not part of the combo", nil)
			return
		}

		if err := db.Delete(&member).Error; err != nil {
			slog.Error("combo.remove_dish", "combo", combo.ID, "dish", member.DishID, "err", err)
			utils.ServerError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, "Dish removed from combo", nil)
	}
}
