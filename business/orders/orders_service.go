package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"jabRental/domain"
	"jabRental/pkg/logger"
)

var ErrInvalidUser = errors.New("invalid user id")

// OrdersRepository reads the persisted order ledger.
type OrdersRepository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.RentalOrder, error)
}

type OrdersService struct {
	orderRepo OrdersRepository
}

func NewOrdersService(orderRepo OrdersRepository) *OrdersService {
	return &OrdersService{
		orderRepo: orderRepo,
	}
}

// FindByUser returns every ledger order of userID, newest first.
func (s *OrdersService) FindByUser(ctx context.Context, userID string) ([]domain.RentalOrder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get order history")
		return nil, fmt.Errorf("context error: %w", err)
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find orders by user", err, "user_id", userID)
		return nil, err
	}

	if orders == nil {
		orders = []domain.RentalOrder{}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}
