package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DishStatusSelling     = "selling"
	DishStatusStopSelling = "stop_selling"
)

type Dish struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Image     string         `json:"image"`
	Price     float64        `gorm:"type:decimal(10,2)" json:"price"`
	Status    string         `gorm:"size:20;default:selling" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
