package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	OrderItemTypeDish  = "dish"
	OrderItemTypeCombo = "combo"
)

var (
	ErrItemProductMissing   = errors.New("order item requires a dish or a combo")
	ErrItemProductAmbiguous = errors.New("order item cannot reference both a dish and a combo")
	ErrItemTypeMismatch     = errors.New("order item type does not match the referenced product")
	ErrItemQuantity         = errors.New("order item quantity must be at least 1")
)

// OrderItem references exactly one of a dish or a combo, discriminated by Type.
type OrderItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   uint           `gorm:"index;not null" json:"order_id"`
	Type      string         `gorm:"size:20;not null" json:"type"`
	DishID    *uint          `gorm:"index" json:"dish_id"`
	Dish      *Dish          `gorm:"foreignKey:DishID" json:"dish,omitempty"`
	ComboID   *uint          `gorm:"index" json:"combo_id"`
	Combo     *Combo         `gorm:"foreignKey:ComboID" json:"combo,omitempty"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Note      string         `gorm:"type:text" json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeSave enforces dish/combo exclusivity on every insert and update.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	if i.DishID == nil && i.ComboID == nil {
		return ErrItemProductMissing
	}
	if i.DishID != nil && i.ComboID != nil {
		return ErrItemProductAmbiguous
	}
	switch i.Type {
	case OrderItemTypeDish:
		if i.DishID == nil {
			return ErrItemTypeMismatch
		}
	case OrderItemTypeCombo:
		if i.ComboID == nil {
			return ErrItemTypeMismatch
		}
	default:
		return ErrItemTypeMismatch
	}
	if i.Quantity < 1 {
		return ErrItemQuantity
	}
	return nil
}
