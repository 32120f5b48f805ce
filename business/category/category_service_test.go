package category

import (
	"context"
	"errors"
	"testing"

	"jabRental/domain"

	"github.com/stretchr/testify/require"
)

type categoryRepoMock struct {
	findAllFn func(ctx context.Context) ([]domain.CategorySummary, error)
}

func (m *categoryRepoMock) FindAll(ctx context.Context) ([]domain.CategorySummary, error) {
	return m.findAllFn(ctx)
}

func TestGetAllCategories(t *testing.T) {
	svc := NewCategoryService(&categoryRepoMock{findAllFn: func(ctx context.Context) ([]domain.CategorySummary, error) {
		return []domain.CategorySummary{{Category: "wireless-mouse", ProductCount: 2}}, nil
	}})

	got, err := svc.GetAllCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), got[0].ProductCount)
}

func TestGetAllCategories_NeverNil(t *testing.T) {
	svc := NewCategoryService(&categoryRepoMock{findAllFn: func(ctx context.Context) ([]domain.CategorySummary, error) {
		return nil, nil
	}})

	got, err := svc.GetAllCategories(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestGetAllCategories_Error(t *testing.T) {
	svc := NewCategoryService(&categoryRepoMock{findAllFn: func(ctx context.Context) ([]domain.CategorySummary, error) {
		return nil, errors.New("db down")
	}})

	_, err := svc.GetAllCategories(context.Background())
	require.Error(t, err)
}
