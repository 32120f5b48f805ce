package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	userService "jabRental/business/user"
	"jabRental/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	VerifyEmail(ctx context.Context, verificationCodeEncrypt string) (err error)
}

type UserHandler struct {
	userService UserService
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		timeout:     10 * time.Second,
	}
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	encCode := c.QueryParam("code")
	if encCode == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing verification code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.userService.VerifyEmail(ctx, encCode)
	if err != nil {
		if errors.Is(err, userService.ErrInvalidVerificationCode) {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to verify email", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Email verified successfully"))
}
