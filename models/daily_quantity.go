package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DailyQuantityTypeDish  = "dish"
	DailyQuantityTypeCombo = "combo"
)

// DailyQuantity caps how many units of one dish or combo may be sold on a
// given date. Dates are stored as YYYY-MM-DD strings to keep date-equality
// filters portable across drivers.
type DailyQuantity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"size:10;index;not null" json:"date"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	DishID    *uint     `gorm:"index" json:"dish_id"`
	Dish      *Dish     `gorm:"foreignKey:DishID" json:"dish,omitempty"`
	ComboID   *uint     `gorm:"index" json:"combo_id"`
	Combo     *Combo    `gorm:"foreignKey:ComboID" json:"combo,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave mirrors the order-item exclusivity rule for daily caps.
func (q *DailyQuantity) BeforeSave(tx *gorm.DB) error {
	if q.DishID == nil && q.ComboID == nil {
		return ErrItemProductMissing
	}
	if q.DishID != nil && q.ComboID != nil {
		return ErrItemProductAmbiguous
	}
	switch q.Type {
	case DailyQuantityTypeDish:
		if q.DishID == nil {
			return ErrItemTypeMismatch
		}
	case DailyQuantityTypeCombo:
		if q.ComboID == nil {
			return ErrItemTypeMismatch
		}
	default:
		return ErrItemTypeMismatch
	}
	if q.Quantity < 0 {
		return ErrItemQuantity
	}
	return nil
}
