package rental

import (
	"jabRental/domain"

	"github.com/shopspring/decimal"
)

// CalculateTotal sums quantity x price-for-period over items.
func CalculateTotal(items []domain.CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.PriceFor(item.RentalPeriod))
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total.InexactFloat64()
}

// CountItems sums line quantities.
func CountItems(items []domain.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return count
}
