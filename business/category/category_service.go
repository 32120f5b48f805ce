package category

import (
	"context"
	"fmt"
	"jabRental/domain"
	"jabRental/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.CategorySummary, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// GetAllCategories lists the catalog's device categories with product counts.
func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	if categories == nil {
		categories = []domain.CategorySummary{}
	}

	return categories, nil
}
