package models

import (
	"time"

	"gorm.io/gorm"
)

// ComboDish links a dish into a combo with a per-pair quantity.
type ComboDish struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ComboID   uint           `gorm:"index;not null" json:"combo_id"`
	DishID    uint           `gorm:"index;not null" json:"dish_id"`
	Dish      Dish           `gorm:"foreignKey:DishID" json:"dish"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
