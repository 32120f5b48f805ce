package postgres

import (
	"context"
	"fmt"
	"jabRental/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

// FindAll groups the catalog by category.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.CategorySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.CategorySummary
	err := r.DB.WithContext(ctx).
		Model(&domain.RentalProduct{}).
		Select("category, COUNT(*) AS product_count").
		Group("category").
		Order("category ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}
