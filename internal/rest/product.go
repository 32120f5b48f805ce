package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jabRental/domain"
	"jabRental/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, category string) ([]domain.RentalProduct, error)
	GetProductByID(ctx context.Context, id string) (*domain.RentalProduct, error)
	CreateProduct(ctx context.Context, product *domain.RentalProduct) (*domain.RentalProduct, error)
	UpdateProduct(ctx context.Context, product *domain.RentalProduct) (*domain.RentalProduct, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Brand        string   `json:"brand"`
	DailyPrice   float64  `json:"daily_price" validate:"gte=0"`
	WeeklyPrice  float64  `json:"weekly_price" validate:"gte=0"`
	MonthlyPrice float64  `json:"monthly_price" validate:"required,gt=0"`
	Deposit      float64  `json:"deposit" validate:"gte=0"`
	Image        string   `json:"image"`
	Features     []string `json:"features"`
	Availability string   `json:"availability" validate:"omitempty,oneof=available limited unavailable"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount  int      `json:"review_count" validate:"gte=0"`
}

type CreateProductRequest struct {
	ID string `json:"id" validate:"required"`
	ProductRequest
}

func (r ProductRequest) toDomain(id string) *domain.RentalProduct {
	return &domain.RentalProduct{
		ID:           id,
		Name:         r.Name,
		Category:     r.Category,
		Brand:        r.Brand,
		DailyPrice:   r.DailyPrice,
		WeeklyPrice:  r.WeeklyPrice,
		MonthlyPrice: r.MonthlyPrice,
		Deposit:      r.Deposit,
		Image:        r.Image,
		Features:     r.Features,
		Availability: domain.Availability(r.Availability),
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
	}
}

func productErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx, c.QueryParam("category"))
	if err != nil {
		logger.Error("Failed to find all Product", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProduct, err := h.productService.CreateProduct(ctx, req.toDomain(req.ID))
	if err != nil {
		logger.Error("Failed to create Product", err)
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product successfully created",
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updateProduct, err := h.productService.UpdateProduct(ctx, req.toDomain(c.Param("id")))
	if err != nil {
		logger.Error("Failed to update Product", err)
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updateProduct,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete Product", err)
		return c.JSON(productErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productID,
	})
}
