package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jabRental/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type productServiceMock struct {
	getAllFn func(ctx context.Context, category string) ([]domain.RentalProduct, error)
	getFn    func(ctx context.Context, id string) (*domain.RentalProduct, error)
	createFn func(ctx context.Context, p *domain.RentalProduct) (*domain.RentalProduct, error)
	updateFn func(ctx context.Context, p *domain.RentalProduct) (*domain.RentalProduct, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *productServiceMock) GetAllProducts(ctx context.Context, category string) ([]domain.RentalProduct, error) {
	return m.getAllFn(ctx, category)
}

func (m *productServiceMock) GetProductByID(ctx context.Context, id string) (*domain.RentalProduct, error) {
	return m.getFn(ctx, id)
}

func (m *productServiceMock) CreateProduct(ctx context.Context, p *domain.RentalProduct) (*domain.RentalProduct, error) {
	return m.createFn(ctx, p)
}

func (m *productServiceMock) UpdateProduct(ctx context.Context, p *domain.RentalProduct) (*domain.RentalProduct, error) {
	return m.updateFn(ctx, p)
}

func (m *productServiceMock) DeleteProduct(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func productEcho(svc ProductService) *echo.Echo {
	h := NewProductHandler(svc)
	e := echo.New()
	e.GET("/products", h.GetAllProducts)
	e.GET("/products/:id", h.GetProductByID)
	e.POST("/products", h.CreateProduct)
	e.PUT("/products/:id", h.UpdateProduct)
	e.DELETE("/products/:id", h.DeleteProduct)
	return e
}

func send(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validProduct = `{"id":"kb","name":"Keyboard","category":"keyboard","daily_price":15,"weekly_price":80,"monthly_price":280,"features":["rgb"]}`

func TestProductHandler_GetAll(t *testing.T) {
	var gotCategory string
	e := productEcho(&productServiceMock{getAllFn: func(ctx context.Context, category string) ([]domain.RentalProduct, error) {
		gotCategory = category
		return []domain.RentalProduct{{ID: "kb", Name: "Keyboard"}}, nil
	}})

	rec := send(e, http.MethodGet, "/products?category=keyboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "keyboard", gotCategory)

	var body struct {
		Products []domain.RentalProduct `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
}

func TestProductHandler_GetByID(t *testing.T) {
	e := productEcho(&productServiceMock{getFn: func(ctx context.Context, id string) (*domain.RentalProduct, error) {
		if id == "kb" {
			return &domain.RentalProduct{ID: "kb"}, nil
		}
		return nil, domain.ErrProductNotFound
	}})

	require.Equal(t, http.StatusOK, send(e, http.MethodGet, "/products/kb", "").Code)
	require.Equal(t, http.StatusNotFound, send(e, http.MethodGet, "/products/nope", "").Code)
}

func TestProductHandler_Create(t *testing.T) {
	var created *domain.RentalProduct
	svc := &productServiceMock{createFn: func(ctx context.Context, p *domain.RentalProduct) (*domain.RentalProduct, error) {
		if p.ID == "dup" {
			return nil, domain.ErrProductExists
		}
		created = p
		return p, nil
	}}
	e := productEcho(svc)

	rec := send(e, http.MethodPost, "/products", validProduct)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "kb", created.ID)
	require.Equal(t, []string{"rgb"}, []string(created.Features))

	rec = send(e, http.MethodPost, "/products", `{"id":"kb","name":"Keyboard"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(e, http.MethodPost, "/products", strings.Replace(validProduct, `"id":"kb"`, `"id":"dup"`, 1))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = send(e, http.MethodPost, "/products", strings.Replace(validProduct, `"features"`, `"availability":"sold","features"`, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_UpdateAndDelete(t *testing.T) {
	svc := &productServiceMock{
		updateFn: func(ctx context.Context, p *domain.RentalProduct) (*domain.RentalProduct, error) {
			if p.ID != "kb" {
				return nil, domain.ErrProductNotFound
			}
			return p, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			switch id {
			case "kb":
				return nil
			case "broken":
				return errors.New("db down")
			}
			return domain.ErrProductNotFound
		},
	}
	e := productEcho(svc)

	require.Equal(t, http.StatusOK, send(e, http.MethodPut, "/products/kb", validProduct).Code)
	require.Equal(t, http.StatusNotFound, send(e, http.MethodPut, "/products/nope", validProduct).Code)

	require.Equal(t, http.StatusOK, send(e, http.MethodDelete, "/products/kb", "").Code)
	require.Equal(t, http.StatusNotFound, send(e, http.MethodDelete, "/products/nope", "").Code)
	require.Equal(t, http.StatusInternalServerError, send(e, http.MethodDelete, "/products/broken", "").Code)
}

func TestProductErrorStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, productErrorStatus(fmt.Errorf("%w: bad", domain.ErrInvalidProduct)))
	require.Equal(t, http.StatusInternalServerError, productErrorStatus(errors.New("x")))
}
