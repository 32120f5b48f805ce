package product

import "jabRental/domain"

// ShowcaseProducts are the devices featured on the storefront landing page.
func ShowcaseProducts() []domain.RentalProduct {
	return []domain.RentalProduct{
		{
			ID:           "wireless-keyboard-pro",
			Name:         "Wireless Keyboard Pro",
			Category:     "wireless-keyboard",
			Brand:        "Apple",
			DailyPrice:   15,
			WeeklyPrice:  80,
			MonthlyPrice: 280,
			Deposit:      300,
			Features:     []string{"Backlit keys", "Wireless connection", "Touch ID"},
			Availability: domain.AvailabilityAvailable,
			Rating:       4.8,
			ReviewCount:  126,
		},
		{
			ID:           "logitech-mx-master-3s",
			Name:         "Logitech MX Master 3S",
			Category:     "wireless-mouse",
			Brand:        "Logitech",
			DailyPrice:   12,
			WeeklyPrice:  65,
			MonthlyPrice: 220,
			Deposit:      250,
			Features:     []string{"8000 DPI", "Wireless charging", "Multi-device"},
			Availability: domain.AvailabilityAvailable,
			Rating:       4.9,
			ReviewCount:  204,
		},
		{
			ID:           "razer-blackwidow-v4",
			Name:         "Razer BlackWidow V4",
			Category:     "mechanical-keyboard",
			Brand:        "Razer",
			DailyPrice:   18,
			WeeklyPrice:  95,
			MonthlyPrice: 320,
			Deposit:      400,
			Features:     []string{"Mechanical switches", "RGB backlight", "Macro programming"},
			Availability: domain.AvailabilityLimited,
			Rating:       4.7,
			ReviewCount:  88,
		},
	}
}
