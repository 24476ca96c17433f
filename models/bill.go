package models

import "time"

// Bill is written once when an order completes and never updated afterwards.
type Bill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"index;not null" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID" json:"order"`
	TotalAmount float64   `gorm:"type:decimal(10,2)" json:"total_amount"`
	CreatedByID uint      `gorm:"index;not null" json:"created_by_id"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
