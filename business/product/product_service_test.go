package product

import (
	"context"
	"errors"
	"testing"

	"jabRental/domain"

	"github.com/stretchr/testify/require"
)

type productRepoMock struct {
	products  map[string]domain.RentalProduct
	createErr error
	findErr   error
	countErr  error
	created   int
}

func newRepo(products ...domain.RentalProduct) *productRepoMock {
	m := &productRepoMock{products: map[string]domain.RentalProduct{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *productRepoMock) Create(ctx context.Context, product *domain.RentalProduct) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.products[product.ID] = *product
	m.created++
	return nil
}

func (m *productRepoMock) FindByID(ctx context.Context, id string) (domain.RentalProduct, error) {
	if m.findErr != nil {
		return domain.RentalProduct{}, m.findErr
	}
	p, ok := m.products[id]
	if !ok {
		return domain.RentalProduct{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *productRepoMock) FindAll(ctx context.Context, category string) ([]domain.RentalProduct, error) {
	out := []domain.RentalProduct{}
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *productRepoMock) Update(ctx context.Context, product *domain.RentalProduct) error {
	m.products[product.ID] = *product
	return nil
}

func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *productRepoMock) Count(ctx context.Context) (int64, error) {
	return int64(len(m.products)), m.countErr
}

func mouse() domain.RentalProduct {
	return domain.RentalProduct{ID: "mouse", Name: "Mouse", Category: "wireless-mouse", MonthlyPrice: 220}
}

func TestCreateProduct(t *testing.T) {
	repo := newRepo()
	svc := NewProductService(repo)

	p := mouse()
	created, err := svc.CreateProduct(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, domain.AvailabilityAvailable, created.Availability)

	dup := mouse()
	_, err = svc.CreateProduct(context.Background(), &dup)
	require.ErrorIs(t, err, domain.ErrProductExists)

	bad := mouse()
	bad.ID = "bad"
	bad.MonthlyPrice = 0
	_, err = svc.CreateProduct(context.Background(), &bad)
	require.ErrorIs(t, err, domain.ErrInvalidProduct)

	bad = mouse()
	bad.ID = ""
	_, err = svc.CreateProduct(context.Background(), &bad)
	require.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *domain.RentalProduct)
	}{
		{"missing name", func(p *domain.RentalProduct) { p.Name = "" }},
		{"missing category", func(p *domain.RentalProduct) { p.Category = "" }},
		{"negative deposit", func(p *domain.RentalProduct) { p.Deposit = -1 }},
		{"bad availability", func(p *domain.RentalProduct) { p.Availability = "sold" }},
		{"rating too high", func(p *domain.RentalProduct) { p.Rating = 5.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mouse()
			tt.modify(&p)
			require.ErrorIs(t, validateProduct(&p), domain.ErrInvalidProduct)
		})
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	repo := newRepo(mouse())
	svc := NewProductService(repo)

	p := mouse()
	p.MonthlyPrice = 199
	updated, err := svc.UpdateProduct(context.Background(), &p)
	require.NoError(t, err)
	require.Equal(t, 199.0, updated.MonthlyPrice)

	missing := mouse()
	missing.ID = "nope"
	_, err = svc.UpdateProduct(context.Background(), &missing)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, svc.DeleteProduct(context.Background(), "mouse"))
	require.ErrorIs(t, svc.DeleteProduct(context.Background(), "mouse"), domain.ErrProductNotFound)
}

func TestProductLookupFailureIsNotMisclassified(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := newRepo(mouse())
	repo.findErr = dbErr
	svc := NewProductService(repo)

	p := mouse()
	p.ID = "fresh"
	_, err := svc.CreateProduct(context.Background(), &p)
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, domain.ErrProductExists)
	require.Zero(t, repo.created)

	upd := mouse()
	_, err = svc.UpdateProduct(context.Background(), &upd)
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, domain.ErrProductNotFound)

	err = svc.DeleteProduct(context.Background(), "mouse")
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, domain.ErrProductNotFound)
	require.Contains(t, repo.products, "mouse")
}

func TestGetProducts(t *testing.T) {
	svc := NewProductService(newRepo(ShowcaseProducts()...))

	all, err := svc.GetAllProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	mice, err := svc.GetAllProducts(context.Background(), " wireless-mouse ")
	require.NoError(t, err)
	require.Len(t, mice, 1)

	p, err := svc.GetProductByID(context.Background(), "razer-blackwidow-v4")
	require.NoError(t, err)
	require.Equal(t, domain.AvailabilityLimited, p.Availability)

	_, err = svc.GetProductByID(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestSeedCatalog(t *testing.T) {
	repo := newRepo()
	svc := NewProductService(repo)

	n, err := svc.SeedCatalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = svc.SeedCatalog(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	failing := newRepo()
	failing.createErr = errors.New("db down")
	_, err = NewProductService(failing).SeedCatalog(context.Background())
	require.Error(t, err)
}

func TestShowcaseProducts(t *testing.T) {
	for _, p := range ShowcaseProducts() {
		require.NoError(t, validateProduct(&p))
	}
}
