package repositories

import (
	"context"

	"github.com/Rakhulsr/vendoz/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error
	ReplaceItems(ctx context.Context, db *gorm.DB, orderID string, items []models.OrderItem) error
}

type OrderItemRepositoryImpl struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{DB: db}
}

func (r *OrderItemRepositoryImpl) BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

// ReplaceItems swaps the line items of an order. Callers run it inside a transaction.
func (r *OrderItemRepositoryImpl) ReplaceItems(ctx context.Context, db *gorm.DB, orderID string, items []models.OrderItem) error {
	if err := db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = ""
		items[i].OrderID = orderID
	}
	return r.BulkCreate(ctx, db, items)
}
