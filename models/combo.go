package models

import (
	"time"

	"gorm.io/gorm"
)

type Combo struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Image       string         `json:"image"`
	Discount    float64        `gorm:"type:decimal(10,2);default:0" json:"discount"`
	Price       float64        `gorm:"-" json:"price"`
	ComboDishes []ComboDish    `gorm:"foreignKey:ComboID" json:"dishes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ComputePrice derives the combo's sell price from its preloaded active
// members: sum of member dish price times member quantity, minus the discount.
func (c *Combo) ComputePrice() float64 {
	var total float64
	for _, cd := range c.ComboDishes {
		total += cd.Dish.Price * float64(cd.Quantity)
	}
	return total - c.Discount
}
