package domain

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderActive    OrderStatus = "active"
	OrderReturned  OrderStatus = "returned"
	OrderCancelled OrderStatus = "cancelled"
)

// RentalWindow is the length of every rental created at checkout.
const RentalWindow = 30 * 24 * time.Hour

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderActive, OrderCancelled},
	OrderActive:    {OrderReturned, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderActive, OrderReturned, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderReturned || s == OrderCancelled
}

// CanTransitionTo reports whether the linear rental lifecycle allows moving
// from s to next. Re-applying the current status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type RentalOrder struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Items       []CartItem  `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (o RentalOrder) Clone() RentalOrder {
	out := o
	out.Items = CloneCartItems(o.Items)
	return out
}

// CREATE TABLE public.rental_orders (
//     id            TEXT PRIMARY KEY,
//     user_id       TEXT NOT NULL,
//     items         JSONB,
//     total_amount  NUMERIC,
//     status        TEXT,
//     start_date    TIMESTAMPTZ,
//     end_date      TIMESTAMPTZ,
//     created_at    TIMESTAMPTZ,
//     updated_at    TIMESTAMPTZ
// );

// OrderRecord is the ledger row of a RentalOrder.
type OrderRecord struct {
	ID          string         `gorm:"primaryKey;column:id;type:text"`
	UserID      string         `gorm:"column:user_id;type:text;not null;index"`
	Items       datatypes.JSON `gorm:"column:items;type:jsonb"`
	TotalAmount float64        `gorm:"column:total_amount;type:numeric"`
	Status      string         `gorm:"column:status;type:text"`
	StartDate   time.Time      `gorm:"column:start_date"`
	EndDate     time.Time      `gorm:"column:end_date"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string {
	return "rental_orders"
}
