package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
	ErrInvalidProduct  = errors.New("invalid product")
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityLimited     Availability = "limited"
	AvailabilityUnavailable Availability = "unavailable"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityLimited, AvailabilityUnavailable:
		return true
	}
	return false
}

// CREATE TABLE public.rental_products (
//     id              TEXT PRIMARY KEY,
//     name            TEXT NOT NULL,
//     category        TEXT NOT NULL,
//     brand           TEXT,
//     daily_price     NUMERIC,
//     weekly_price    NUMERIC,
//     monthly_price   NUMERIC,
//     deposit         NUMERIC,
//     image           TEXT,
//     features        JSONB,
//     availability    TEXT DEFAULT 'available',
//     rating          NUMERIC,
//     review_count    INT,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type RentalProduct struct {
	ID           string                      `gorm:"primaryKey;column:id;type:text" json:"id"`
	Name         string                      `gorm:"column:name;type:text;not null" json:"name"`
	Category     string                      `gorm:"column:category;type:text;not null;index" json:"category"`
	Brand        string                      `gorm:"column:brand;type:text" json:"brand"`
	DailyPrice   float64                     `gorm:"column:daily_price;type:numeric" json:"daily_price"`
	WeeklyPrice  float64                     `gorm:"column:weekly_price;type:numeric" json:"weekly_price"`
	MonthlyPrice float64                     `gorm:"column:monthly_price;type:numeric" json:"monthly_price"`
	Deposit      float64                     `gorm:"column:deposit;type:numeric" json:"deposit"`
	Image        string                      `gorm:"column:image;type:text" json:"image"`
	Features     datatypes.JSONSlice[string] `gorm:"column:features;type:jsonb" json:"features"`
	Availability Availability                `gorm:"column:availability;type:text;default:available" json:"availability"`
	Rating       float64                     `gorm:"column:rating;type:numeric" json:"rating"`
	ReviewCount  int                         `gorm:"column:review_count" json:"review_count"`
	CreatedAt    time.Time                   `gorm:"column:created_at" json:"-"`
	UpdatedAt    time.Time                   `gorm:"column:updated_at" json:"-"`
}

func (RentalProduct) TableName() string {
	return "rental_products"
}

// PriceFor returns the product price for a rental period. Unknown periods
// are billed monthly.
func (p RentalProduct) PriceFor(period RentalPeriod) float64 {
	switch period {
	case RentalDaily:
		return p.DailyPrice
	case RentalWeekly:
		return p.WeeklyPrice
	default:
		return p.MonthlyPrice
	}
}

func (p RentalProduct) Clone() RentalProduct {
	out := p
	if p.Features != nil {
		out.Features = append(datatypes.JSONSlice[string]{}, p.Features...)
	}
	return out
}

// CategorySummary is one row of the catalog category listing.
type CategorySummary struct {
	Category     string `json:"category"`
	ProductCount int64  `json:"product_count"`
}
