package rental

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("user is not authenticated")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
	ErrInvalidPeriod      = errors.New("invalid rental period")
	ErrInvalidUser        = errors.New("invalid registration data")
)

// Messages written to the store's error field for the UI to display.
const (
	MsgLoginFailed       = "Login failed, please check your email and password"
	MsgRegisterFailed    = "Registration failed, please try again later"
	MsgCreateOrderFailed = "Failed to create order, please try again later"
	MsgGetOrdersFailed   = "Failed to fetch orders"
)
