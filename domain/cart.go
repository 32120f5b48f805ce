package domain

import "time"

type RentalPeriod string

const (
	RentalDaily   RentalPeriod = "daily"
	RentalWeekly  RentalPeriod = "weekly"
	RentalMonthly RentalPeriod = "monthly"

	DefaultRentalPeriod = RentalMonthly
)

func (p RentalPeriod) Valid() bool {
	switch p {
	case RentalDaily, RentalWeekly, RentalMonthly:
		return true
	}
	return false
}

// CartItem is a product line in the cart. A cart holds at most one line
// per (product id, rental period).
type CartItem struct {
	RentalProduct
	Quantity     int          `json:"quantity"`
	RentalPeriod RentalPeriod `json:"rental_period"`
	StartDate    *time.Time   `json:"start_date,omitempty"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
}

func (i CartItem) Subtotal() float64 {
	return i.PriceFor(i.RentalPeriod) * float64(i.Quantity)
}

func (i CartItem) Clone() CartItem {
	out := i
	out.RentalProduct = i.RentalProduct.Clone()
	if i.StartDate != nil {
		t := *i.StartDate
		out.StartDate = &t
	}
	if i.EndDate != nil {
		t := *i.EndDate
		out.EndDate = &t
	}
	return out
}

// CartItemUpdate carries the fields of a partial cart line update. Nil
// fields are left untouched.
type CartItemUpdate struct {
	Quantity     *int
	RentalPeriod *RentalPeriod
	StartDate    *time.Time
	EndDate      *time.Time
}

func CloneCartItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
