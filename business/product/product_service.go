package product

import (
	"context"
	"errors"
	"fmt"
	"jabRental/domain"
	"jabRental/pkg/logger"
	"strings"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.RentalProduct) error
	FindByID(ctx context.Context, id string) (domain.RentalProduct, error)
	FindAll(ctx context.Context, category string) ([]domain.RentalProduct, error)
	Update(ctx context.Context, product *domain.RentalProduct) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context, category string) ([]domain.RentalProduct, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx, strings.TrimSpace(category))
	if err != nil {
		logger.Error("Failed to find all product", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*domain.RentalProduct, error) {
	if strings.TrimSpace(id) == "" {
		logger.Error("invalid product id")
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrInvalidProduct)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err.Error())
		return nil, err
	}

	return &product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.RentalProduct) (*domain.RentalProduct, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == "" {
		logger.Error("Invalid product data: product id is required")
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidProduct)
	}

	if err := validateProduct(product); err != nil {
		logger.Error("Invalid product data", err)
		return nil, err
	}

	_, err := s.productRepo.FindByID(ctx, product.ID)
	switch {
	case err == nil:
		logger.Error("product already exists", "product_id", product.ID)
		return nil, domain.ErrProductExists
	case !errors.Is(err, domain.ErrProductNotFound):
		logger.Error("failed to check existing product", err)
		return nil, fmt.Errorf("failed to check existing product: %w", err)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.RentalProduct) (*domain.RentalProduct, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == "" {
		logger.Error("Invalid product data: ID is required")
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidProduct)
	}

	if err := validateProduct(product); err != nil {
		logger.Error("Invalid product data", err)
		return nil, err
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("product not found", err)
			return nil, domain.ErrProductNotFound
		}
		logger.Error("failed to find product", err)
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "product_id", product.ID)

	return &updatedProduct, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		logger.Error("Invalid product id when deleting product")
		return fmt.Errorf("%w: invalid product id", domain.ErrInvalidProduct)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("product not found", err)
			return domain.ErrProductNotFound
		}
		logger.Error("failed to find product", err)
		return fmt.Errorf("failed to find product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted success", "product_id", id)

	return nil
}

// SeedCatalog inserts the showcase devices when the catalog is empty.
func (s *productService) SeedCatalog(ctx context.Context) (int, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeded := 0
	for _, p := range ShowcaseProducts() {
		p := p
		if err := s.productRepo.Create(ctx, &p); err != nil {
			return seeded, fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
		seeded++
	}

	logger.Info("catalog seeded", "count", seeded)
	return seeded, nil
}

func validateProduct(product *domain.RentalProduct) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidProduct)
	}

	if product.Category == "" {
		return fmt.Errorf("%w: product category is required", domain.ErrInvalidProduct)
	}

	if product.DailyPrice < 0 || product.WeeklyPrice < 0 || product.Deposit < 0 {
		return fmt.Errorf("%w: prices cannot be negative", domain.ErrInvalidProduct)
	}

	if product.MonthlyPrice <= 0 {
		return fmt.Errorf("%w: monthly price must be greater than 0", domain.ErrInvalidProduct)
	}

	if product.Availability == "" {
		product.Availability = domain.AvailabilityAvailable
	}

	if !product.Availability.Valid() {
		return fmt.Errorf("%w: invalid availability", domain.ErrInvalidProduct)
	}

	if product.Rating < 0 || product.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrInvalidProduct)
	}

	return nil
}
