package models

import (
	"time"

	"gorm.io/gorm"
)

type DiningTable struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"size:255;index;not null" json:"code"`
	NumberOfSeats int            `gorm:"not null" json:"number_of_seats"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
