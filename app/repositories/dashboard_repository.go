package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository holds the read-only aggregate queries behind the admin dashboard.
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountOrdersByStatus(ctx context.Context, status string) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	LowStock(ctx context.Context, threshold, limit int) ([]models.Product, error)
	OrdersBetween(ctx context.Context, from, to time.Time, excludeStatus string) ([]models.Order, error)
	ProductCosts(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) count(ctx context.Context, model interface{}, query string, args ...interface{}) (int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *dashboardRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.User{}, "")
}

func (r *dashboardRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Product{}, "")
}

func (r *dashboardRepository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Order{}, "")
}

func (r *dashboardRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total_amount) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !result.Total.Valid {
		return decimal.Zero, nil
	}
	return result.Total.Decimal, nil
}

func (r *dashboardRepository) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, &models.Order{}, "created_at >= ? AND created_at < ?", from.UTC(), to.UTC())
}

func (r *dashboardRepository) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &models.Order{}, "order_status = ?", status)
}

func (r *dashboardRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Product{}, "stock = ?", 0)
}

func (r *dashboardRepository) LowStock(ctx context.Context, threshold, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock ASC").
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// OrdersBetween loads orders created in [from, to) with their line items.
func (r *dashboardRepository) OrdersBetween(ctx context.Context, from, to time.Time, excludeStatus string) ([]models.Order, error) {
	var orders []models.Order
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC())
	if excludeStatus != "" {
		tx = tx.Where("order_status <> ?", excludeStatus)
	}
	if err := tx.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *dashboardRepository) ProductCosts(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	costs := make(map[string]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return costs, nil
	}

	var rows []struct {
		ID   string
		Cost decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id, cost").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		costs[row.ID] = row.Cost
	}
	return costs, nil
}
