package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"jabRental/domain"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrdersRepository is the durable ledger of orders placed by any session.
type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) RecordOrder(ctx context.Context, order domain.RentalOrder) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	record := domain.OrderRecord{
		ID:          order.ID,
		UserID:      order.UserID,
		Items:       datatypes.JSON(items),
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		StartDate:   order.StartDate,
		EndDate:     order.EndDate,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	if err := r.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create order record: %w", err)
	}

	return nil
}

func (r *OrdersRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedAt time.Time) error {
	row := r.DB.WithContext(ctx).Model(&domain.OrderRecord{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": updatedAt,
		})
	if err := row.Error; err != nil {
		return err
	}
	if row.RowsAffected == 0 {
		return errors.New("order_id not found")
	}

	return nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID string) ([]domain.RentalOrder, error) {
	var records []domain.OrderRecord
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}

	orders := make([]domain.RentalOrder, 0, len(records))
	for _, rec := range records {
		order, err := toRentalOrder(rec)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func toRentalOrder(rec domain.OrderRecord) (domain.RentalOrder, error) {
	var items []domain.CartItem
	if len(rec.Items) > 0 {
		if err := json.Unmarshal(rec.Items, &items); err != nil {
			return domain.RentalOrder{}, fmt.Errorf("failed to unmarshal order %s items: %w", rec.ID, err)
		}
	}

	return domain.RentalOrder{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Items:       items,
		TotalAmount: rec.TotalAmount,
		Status:      domain.OrderStatus(rec.Status),
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}
