package models

import "time"

// Order lifecycle: created pending, mutated only while pending, then either
// completed (via billing) or cancelled. Both end states are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string      `gorm:"size:15;not null" json:"customer_phone"`
	DiningTableID uint        `gorm:"index;not null" json:"dining_table_id"`
	DiningTable   DiningTable `gorm:"foreignKey:DiningTableID" json:"dining_table"`
	EmployeeID    uint        `gorm:"index;not null" json:"employee_id"`
	Employee      User        `gorm:"foreignKey:EmployeeID" json:"employee"`
	Status        string      `gorm:"size:20;default:pending;index" json:"status"`
	FinishedAt    *time.Time  `json:"finished_at"`
	Note          string      `gorm:"type:text" json:"note"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}
