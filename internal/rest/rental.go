package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jabRental/business/rental"
	"jabRental/domain"
	"jabRental/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductFinder interface {
	GetProductByID(ctx context.Context, id string) (*domain.RentalProduct, error)
}

type OrderHistory interface {
	FindByUser(ctx context.Context, userID string) ([]domain.RentalOrder, error)
}

type VerificationSender interface {
	SendVerification(ctx context.Context, sessionID string, user domain.User) error
}

type RentalHandler struct {
	sessions  SessionManager
	products  ProductFinder
	history   OrderHistory
	verifier  VerificationSender
	validator *validator.Validate
	timeout   time.Duration
}

func NewRentalHandler(sessions SessionManager, products ProductFinder, history OrderHistory, verifier VerificationSender) *RentalHandler {
	return &RentalHandler{
		sessions:  sessions,
		products:  products,
		history:   history,
		verifier:  verifier,
		validator: validator.New(),
		timeout:   10 * time.Second,
	}
}

type AddToCartRequest struct {
	ProductID    string              `json:"product_id" validate:"required"`
	RentalPeriod domain.RentalPeriod `json:"rental_period"`
}

type UpdateCartItemRequest struct {
	Quantity     *int                 `json:"quantity"`
	RentalPeriod *domain.RentalPeriod `json:"rental_period"`
	StartDate    *time.Time           `json:"start_date"`
	EndDate      *time.Time           `json:"end_date"`
}

type CartOpenRequest struct {
	Open *bool `json:"open" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func cartResponse(store *rental.Store) CartResponse {
	return CartResponse{
		Items: store.Cart(),
		Total: store.CalculateCartTotal(),
		Count: store.CartCount(),
	}
}

func (h *RentalHandler) GetState(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, _, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(store.State()))
}

func (h *RentalHandler) GetCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, _, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cartResponse(store)))
}

func (h *RentalHandler) AddToCart(c echo.Context) error {
	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	product, err := h.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find product", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if product.Availability == domain.AvailabilityUnavailable {
		return c.JSON(http.StatusConflict, ResponseError{Message: "product is currently unavailable"})
	}

	item := store.AddToCart(*product, req.RentalPeriod)
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *RentalHandler) UpdateCartItem(c echo.Context) error {
	productID := c.Param("productId")

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	err := store.UpdateCartItem(productID, domain.CartItemUpdate{
		Quantity:     req.Quantity,
		RentalPeriod: req.RentalPeriod,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		if errors.Is(err, rental.ErrInvalidPeriod) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update cart item", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cartResponse(store)))
}

func (h *RentalHandler) RemoveFromCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	store.RemoveFromCart(c.Param("productId"))
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cartResponse(store)))
}

func (h *RentalHandler) ClearCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	store.ClearCart()
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cartResponse(store)))
}

func (h *RentalHandler) SetCartOpen(c echo.Context) error {
	var req CartOpenRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	store.SetCartOpen(*req.Open)
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]bool{"cart_open": *req.Open}))
}

func (h *RentalHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validation user login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	user, err := store.Login(ctx, req.Email, req.Password)
	persist(ctx, h.sessions, sessionID)
	if err != nil {
		if errors.Is(err, rental.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: rental.MsgLoginFailed})
		}
		logger.Error("Login failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: rental.MsgLoginFailed})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(user))
}

func (h *RentalHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validation user register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	user, err := store.Register(ctx, domain.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	persist(ctx, h.sessions, sessionID)
	if err != nil {
		if errors.Is(err, rental.ErrInvalidUser) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Register failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: rental.MsgRegisterFailed})
	}

	if h.verifier != nil {
		if err := h.verifier.SendVerification(ctx, sessionID, user); err != nil {
			logger.Warn("Verification email not sent", err)
		}
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(user))
}

func (h *RentalHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	store.Logout()
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Logged out"))
}

// CreateOrder checks out the session's cart.
func (h *RentalHandler) CreateOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	items := store.Cart()
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "cart is empty"})
	}

	order, err := store.CreateOrder(ctx, items)
	persist(ctx, h.sessions, sessionID)
	if err != nil {
		if errors.Is(err, rental.ErrNotAuthenticated) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to create order", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: rental.MsgCreateOrderFailed})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *RentalHandler) GetOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, _, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	orders, err := store.GetOrders(ctx)
	if err != nil {
		logger.Error("Failed to get orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: rental.MsgGetOrdersFailed})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

// GetOrderHistory reads the signed-in user's orders from the ledger, which
// outlives the session.
func (h *RentalHandler) GetOrderHistory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, _, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	user := store.User()
	if user == nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: rental.ErrNotAuthenticated.Error()})
	}

	orders, err := h.history.FindByUser(ctx, user.ID)
	if err != nil {
		logger.Error("Failed to get order history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: rental.MsgGetOrdersFailed})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *RentalHandler) UpdateOrderStatus(c echo.Context) error {
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, sessionID, ok := loadStore(ctx, c, h.sessions)
	if !ok {
		return nil
	}

	order, err := store.UpdateOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, rental.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		case errors.Is(err, rental.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, rental.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update order status", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	persist(ctx, h.sessions, sessionID)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
