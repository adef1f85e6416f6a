package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/vendoz/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error)
	FindPendingByUser(ctx context.Context, userID string) (*models.Order, error)
	FindAll(ctx context.Context, status string) ([]models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindRecent(ctx context.Context, limit int) ([]models.Order, error)
	UpdateDetails(ctx context.Context, tx *gorm.DB, order *models.Order) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, updates map[string]interface{}) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Items")
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Omit("User").Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.GetByIDForUpdate(ctx, r.db, id)
}

// GetByIDForUpdate reads through tx so the caller sees its own uncommitted writes.
func (r *gormOrderRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Order, error) {
	var order models.Order

	err := r.withRelations(tx.WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindPendingByUser(ctx context.Context, userID string) (*models.Order, error) {
	var order models.Order

	err := r.withRelations(r.db.WithContext(ctx)).
		Where("user_id = ? AND order_status = ?", userID, models.OrderStatusPending).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindAll lists orders newest first. An empty status or "all" disables the filter.
func (r *gormOrderRepository) FindAll(ctx context.Context, status string) ([]models.Order, error) {
	var orders []models.Order

	query := r.withRelations(r.db.WithContext(ctx)).Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("order_status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order

	err := r.withRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) FindRecent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order

	err := r.withRelations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateDetails rewrites the checkout fields of an existing order. Items are handled by OrderItemRepository.
func (r *gormOrderRepository) UpdateDetails(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"shipping_address":      order.ShippingAddress.Address,
		"shipping_city":         order.ShippingAddress.City,
		"shipping_country":      order.ShippingAddress.Country,
		"shipping_postal_code":  order.ShippingAddress.PostalCode,
		"shipping_phone_number": order.ShippingAddress.PhoneNumber,
		"payment_method":        order.PaymentMethod,
		"payment_status":        order.PaymentStatus,
		"total_amount":          order.TotalAmount,
		"updated_at":            tx.NowFunc(),
	}).Error
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = tx.NowFunc()
	return tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}
