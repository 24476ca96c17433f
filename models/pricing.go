package models

import "gorm.io/gorm"

// LoadComboWithDishes fetches a combo with its active members, including
// member dishes that have since been soft-deleted (already-ordered combos
// must still price).
func LoadComboWithDishes(db *gorm.DB, comboID uint) (*Combo, error) {
	var combo Combo
	err := db.Unscoped().
		Preload("ComboDishes", "deleted_at IS NULL").
		Preload("ComboDishes.Dish", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		First(&combo, comboID).Error
	if err != nil {
		return nil, err
	}
	combo.Price = combo.ComputePrice()
	return &combo, nil
}

// UnitPrice resolves the current sell price of the item's dish or combo.
func (i *OrderItem) UnitPrice(db *gorm.DB) (float64, error) {
	switch {
	case i.DishID != nil:
		var dish Dish
		if err := db.Unscoped().First(&dish, *i.DishID).Error; err != nil {
			return 0, err
		}
		return dish.Price, nil
	case i.ComboID != nil:
		combo, err := LoadComboWithDishes(db, *i.ComboID)
		if err != nil {
			return 0, err
		}
		return combo.Price, nil
	}
	return 0, ErrItemProductMissing
}

// OrderTotal sums unit price times quantity over the order's non-deleted items.
func OrderTotal(db *gorm.DB, orderID uint) (float64, error) {
	var items []OrderItem
	if err := db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return 0, err
	}
	var total float64
	for _, item := range items {
		unit, err := item.UnitPrice(db)
		if err != nil {
			return 0, err
		}
		total += unit * float64(item.Quantity)
	}
	return total, nil
}
