package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComboComputePrice(t *testing.T) {
	combo := Combo{
		Discount: 10000,
		ComboDishes: []ComboDish{
			{Dish: Dish{Price: 40000}, Quantity: 1},
			{Dish: Dish{Price: 25000}, Quantity: 2},
		},
	}
	require.InDelta(t, 80000, combo.ComputePrice(), 0.001)
}

func TestComboComputePriceNoMembers(t *testing.T) {
	combo := Combo{Discount: 5000}
	require.InDelta(t, -5000, combo.ComputePrice(), 0.001)
}
