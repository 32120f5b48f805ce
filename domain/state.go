package domain

// RentalState is everything a visitor's store holds.
type RentalState struct {
	User            *User         `json:"user"`
	IsAuthenticated bool          `json:"is_authenticated"`
	Cart            []CartItem    `json:"cart"`
	CartOpen        bool          `json:"cart_open"`
	Orders          []RentalOrder `json:"orders"`
	CurrentOrder    *RentalOrder  `json:"current_order"`
	Loading         bool          `json:"loading"`
	Error           string        `json:"error,omitempty"`
}

func (s RentalState) Clone() RentalState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Cart = CloneCartItems(s.Cart)
	if s.Orders != nil {
		out.Orders = make([]RentalOrder, len(s.Orders))
		for i, o := range s.Orders {
			out.Orders[i] = o.Clone()
		}
	}
	if s.CurrentOrder != nil {
		o := s.CurrentOrder.Clone()
		out.CurrentOrder = &o
	}
	return out
}
