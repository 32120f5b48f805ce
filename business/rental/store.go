package rental

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"jabRental/domain"
	"jabRental/pkg/logger"
	"jabRental/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// OrderLedger archives placed orders outside the visitor's store.
type OrderLedger interface {
	RecordOrder(ctx context.Context, order domain.RentalOrder) error
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedAt time.Time) error
}

type Options struct {
	// Authenticator decides mock logins. A nil Authenticator rejects every login.
	Authenticator Authenticator
	// Ledger is optional.
	Ledger   OrderLedger
	Validate *validator.Validate

	// Delay stands in for the latency of login, register and order creation.
	Delay time.Duration
	// OrdersDelay stands in for the latency of listing orders.
	OrdersDelay time.Duration

	// StrictTransitions restricts order status changes to the rental lifecycle.
	StrictTransitions bool

	Now func() time.Time
}

// Store is the cart and order state of one visitor. Every mutation is
// applied in a single locked step; simulated remote calls wait outside the
// lock and then commit their result.
//
// Ledger writes happen without mu held. orderMu serializes them so that
// order ids and status changes commit in the order they were recorded.
type Store struct {
	mu      sync.RWMutex
	orderMu sync.Mutex
	state   domain.RentalState
	opts    Options
}

func NewStore(opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Validate == nil {
		opts.Validate = validator.New()
	}

	return &Store{opts: opts}
}

func (s *Store) set(fn func(state *domain.RentalState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
}

// State returns a deep copy of the current state.
func (s *Store) State() domain.RentalState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Restore replaces the whole state, used when a persisted session is loaded.
func (s *Store) Restore(state domain.RentalState) {
	s.set(func(st *domain.RentalState) {
		*st = state.Clone()
		st.IsAuthenticated = st.User != nil
	})
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CloneCartItems(s.state.Cart)
}

func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Store) SetUser(user *domain.User) {
	s.set(func(state *domain.RentalState) {
		if user == nil {
			state.User = nil
		} else {
			u := *user
			state.User = &u
		}
		state.IsAuthenticated = user != nil
	})
}

func (s *Store) SetLoading(loading bool) {
	s.set(func(state *domain.RentalState) {
		state.Loading = loading
	})
}

func (s *Store) SetError(msg string) {
	s.set(func(state *domain.RentalState) {
		state.Error = msg
	})
}

func (s *Store) SetCartOpen(open bool) {
	s.set(func(state *domain.RentalState) {
		state.CartOpen = open
	})
}

// AddToCart merges the product into the line with the same product id and
// rental period, or appends a new line with quantity 1. An empty or unknown
// period falls back to monthly.
func (s *Store) AddToCart(product domain.RentalProduct, period domain.RentalPeriod) domain.CartItem {
	if !period.Valid() {
		period = domain.DefaultRentalPeriod
	}

	var line domain.CartItem
	s.set(func(state *domain.RentalState) {
		for i := range state.Cart {
			if state.Cart[i].ID == product.ID && state.Cart[i].RentalPeriod == period {
				state.Cart[i].Quantity++
				line = state.Cart[i].Clone()
				return
			}
		}

		item := domain.CartItem{
			RentalProduct: product.Clone(),
			Quantity:      1,
			RentalPeriod:  period,
		}
		state.Cart = append(state.Cart, item)
		line = item.Clone()
	})

	metrics.CartAdds.WithLabelValues(string(period)).Inc()
	return line
}

// RemoveFromCart drops the first line holding productID.
func (s *Store) RemoveFromCart(productID string) {
	s.set(func(state *domain.RentalState) {
		if idx := indexOfProduct(state.Cart, productID); idx >= 0 {
			state.Cart = removeAt(state.Cart, idx)
		}
	})
}

// UpdateCartItem merges update into the first line holding productID. A
// quantity of zero or less removes the line, and a period change that
// lands on an existing line folds both lines together.
func (s *Store) UpdateCartItem(productID string, update domain.CartItemUpdate) error {
	if update.RentalPeriod != nil && !update.RentalPeriod.Valid() {
		return ErrInvalidPeriod
	}

	s.set(func(state *domain.RentalState) {
		idx := indexOfProduct(state.Cart, productID)
		if idx < 0 {
			return
		}

		item := &state.Cart[idx]
		if update.Quantity != nil {
			item.Quantity = *update.Quantity
		}
		if update.RentalPeriod != nil {
			item.RentalPeriod = *update.RentalPeriod
		}
		if update.StartDate != nil {
			t := *update.StartDate
			item.StartDate = &t
		}
		if update.EndDate != nil {
			t := *update.EndDate
			item.EndDate = &t
		}

		if item.Quantity <= 0 {
			state.Cart = removeAt(state.Cart, idx)
			return
		}

		for j := range state.Cart {
			if j != idx && state.Cart[j].ID == item.ID && state.Cart[j].RentalPeriod == item.RentalPeriod {
				state.Cart[j].Quantity += item.Quantity
				state.Cart = removeAt(state.Cart, idx)
				return
			}
		}
	})

	return nil
}

func (s *Store) ClearCart() {
	s.set(func(state *domain.RentalState) {
		state.Cart = []domain.CartItem{}
	})
}

// CalculateCartTotal prices the current cart.
func (s *Store) CalculateCartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CalculateTotal(s.state.Cart)
}

// CartCount is the number of units in the cart.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CountItems(s.state.Cart)
}

// Login is a simulated remote call: it succeeds only when the authenticator
// accepts the password and then signs in a mock user keyed by email.
func (s *Store) Login(ctx context.Context, email, password string) (domain.User, error) {
	s.begin()

	if err := wait(ctx, s.opts.Delay); err != nil {
		s.fail(MsgLoginFailed)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return domain.User{}, err
	}

	if s.opts.Authenticator == nil || !s.opts.Authenticator.Authenticate(email, password) {
		s.fail(MsgLoginFailed)
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return domain.User{}, ErrInvalidCredentials
	}

	user := domain.User{
		ID:         MockUserID(email),
		Email:      email,
		Name:       localPart(email),
		IsVerified: true,
		Role:       domain.RoleUser,
	}

	s.set(func(state *domain.RentalState) {
		u := user
		state.User = &u
		state.IsAuthenticated = true
		state.Loading = false
	})

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Debug("mock login succeeded", "email", email)
	return user, nil
}

// Register is a simulated remote call creating a new unverified user.
func (s *Store) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	s.begin()

	if err := s.opts.Validate.Struct(input); err != nil {
		s.fail(MsgRegisterFailed)
		return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	if err := wait(ctx, s.opts.Delay); err != nil {
		s.fail(MsgRegisterFailed)
		return domain.User{}, err
	}

	user := domain.User{
		ID:         strconv.FormatInt(s.opts.Now().UnixMilli(), 10),
		Email:      input.Email,
		Name:       input.Name,
		Phone:      input.Phone,
		Address:    input.Address,
		IsVerified: false,
		Role:       domain.RoleUser,
	}

	s.set(func(state *domain.RentalState) {
		u := user
		state.User = &u
		state.IsAuthenticated = true
		state.Loading = false
	})

	return user, nil
}

// Logout clears the user together with the cart and the orders.
func (s *Store) Logout() {
	s.set(func(state *domain.RentalState) {
		state.User = nil
		state.IsAuthenticated = false
		state.Cart = []domain.CartItem{}
		state.Orders = []domain.RentalOrder{}
		state.CurrentOrder = nil
	})
}

// MarkVerified flags the signed-in user as verified when the email matches.
func (s *Store) MarkVerified(email string) bool {
	var ok bool
	s.set(func(state *domain.RentalState) {
		if state.User != nil && strings.EqualFold(state.User.Email, email) {
			state.User.IsVerified = true
			ok = true
		}
	})

	return ok
}

// CreateOrder places a pending order for items with a 30 day rental window
// and empties the cart. The total is frozen at creation time.
func (s *Store) CreateOrder(ctx context.Context, items []domain.CartItem) (domain.RentalOrder, error) {
	user := s.User()
	if user == nil {
		return domain.RentalOrder{}, ErrNotAuthenticated
	}

	s.begin()

	if err := wait(ctx, s.opts.Delay); err != nil {
		s.fail(MsgCreateOrderFailed)
		return domain.RentalOrder{}, err
	}

	now := s.opts.Now().UTC()
	snapshot := domain.CloneCartItems(items)
	if snapshot == nil {
		snapshot = []domain.CartItem{}
	}

	order := domain.RentalOrder{
		UserID:      user.ID,
		Items:       snapshot,
		TotalAmount: CalculateTotal(snapshot),
		Status:      domain.OrderPending,
		StartDate:   now,
		EndDate:     now.Add(domain.RentalWindow),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.orderMu.Lock()
	defer s.orderMu.Unlock()

	s.mu.RLock()
	signedIn := s.state.User != nil && s.state.User.ID == user.ID
	order.ID = nextOrderID(s.state.Orders, now)
	s.mu.RUnlock()

	if !signedIn {
		s.fail(MsgCreateOrderFailed)
		return domain.RentalOrder{}, ErrNotAuthenticated
	}

	if s.opts.Ledger != nil {
		if err := s.opts.Ledger.RecordOrder(ctx, order); err != nil {
			s.fail(MsgCreateOrderFailed)
			return domain.RentalOrder{}, fmt.Errorf("failed to record order: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil || s.state.User.ID != user.ID {
		logger.Warn("user signed out while order was recorded", "order_id", order.ID)
		s.state.Error = MsgCreateOrderFailed
		s.state.Loading = false
		return domain.RentalOrder{}, ErrNotAuthenticated
	}

	s.state.Orders = append(s.state.Orders, order)
	current := order.Clone()
	s.state.CurrentOrder = &current
	s.state.Cart = []domain.CartItem{}
	s.state.Loading = false

	metrics.OrdersCreated.Inc()
	metrics.OrderAmount.Observe(order.TotalAmount)

	return order.Clone(), nil
}

// GetOrders returns the signed-in user's orders, or none without a user.
func (s *Store) GetOrders(ctx context.Context) ([]domain.RentalOrder, error) {
	user := s.User()
	if user == nil {
		return []domain.RentalOrder{}, nil
	}

	s.SetLoading(true)

	if err := wait(ctx, s.opts.OrdersDelay); err != nil {
		s.fail(MsgGetOrdersFailed)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]domain.RentalOrder, 0, len(s.state.Orders))
	for _, o := range s.state.Orders {
		if o.UserID == user.ID {
			orders = append(orders, o.Clone())
		}
	}
	s.state.Loading = false

	return orders, nil
}

// UpdateOrderStatus moves an order to status and refreshes its update time.
// With StrictTransitions the move must follow the rental lifecycle.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.RentalOrder, error) {
	if !status.Valid() {
		return domain.RentalOrder{}, ErrInvalidStatus
	}

	s.orderMu.Lock()
	defer s.orderMu.Unlock()

	s.mu.RLock()
	idx := indexOfOrder(s.state.Orders, orderID)
	var from domain.OrderStatus
	if idx >= 0 {
		from = s.state.Orders[idx].Status
	}
	s.mu.RUnlock()

	if idx < 0 {
		return domain.RentalOrder{}, ErrOrderNotFound
	}
	if s.opts.StrictTransitions && !from.CanTransitionTo(status) {
		return domain.RentalOrder{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
	}

	now := s.opts.Now().UTC()
	if s.opts.Ledger != nil {
		if err := s.opts.Ledger.UpdateOrderStatus(ctx, orderID, status, now); err != nil {
			return domain.RentalOrder{}, fmt.Errorf("failed to update order ledger: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A logout during the ledger write drops the order from the store.
	idx = indexOfOrder(s.state.Orders, orderID)
	if idx < 0 {
		return domain.RentalOrder{}, ErrOrderNotFound
	}

	order := &s.state.Orders[idx]
	order.Status = status
	order.UpdatedAt = now
	if s.state.CurrentOrder != nil && s.state.CurrentOrder.ID == orderID {
		current := order.Clone()
		s.state.CurrentOrder = &current
	}

	metrics.OrderStatusTransitions.WithLabelValues(string(from), string(status)).Inc()
	return order.Clone(), nil
}

func (s *Store) begin() {
	s.set(func(state *domain.RentalState) {
		state.Loading = true
		state.Error = ""
	})
}

func (s *Store) fail(msg string) {
	s.set(func(state *domain.RentalState) {
		state.Error = msg
		state.Loading = false
	})
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func indexOfProduct(items []domain.CartItem, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}

func removeAt(items []domain.CartItem, idx int) []domain.CartItem {
	return append(items[:idx], items[idx+1:]...)
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// nextOrderID derives the id from the creation time, suffixing it when two
// orders land in the same millisecond.
func indexOfOrder(orders []domain.RentalOrder, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}

	return -1
}

func nextOrderID(orders []domain.RentalOrder, now time.Time) string {
	base := fmt.Sprintf("order_%d", now.UnixMilli())
	id := base
	for n := 2; ; n++ {
		taken := false
		for _, o := range orders {
			if o.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}
