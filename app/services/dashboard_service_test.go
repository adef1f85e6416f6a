package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dashboardNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func newDashboard(db *gorm.DB) *DashboardService {
	return NewDashboardService(repositories.NewDashboardRepository(db), repositories.NewOrderRepository(db), time.UTC).
		WithClock(func() time.Time { return dashboardNow })
}

func seedOrder(t *testing.T, db *gorm.DB, userID, status string, created time.Time, items ...models.OrderItem) *models.Order {
	t.Helper()
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	order := &models.Order{
		UserID:        userID,
		Items:         items,
		PaymentMethod: "card",
		OrderStatus:   status,
		TotalAmount:   total,
		CreatedAt:     created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestProfitReturnsRequestedMonthsNewestFirst(t *testing.T) {
	db := openDB(t)
	svc := newDashboard(db)

	profit, err := svc.Profit(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, profit, DefaultProfitMonths)
	assert.Equal(t, "Mar 2026", profit[0].Month)
	assert.Equal(t, "Apr 2025", profit[11].Month)
	for _, entry := range profit {
		assert.True(t, entry.Revenue.IsZero())
		assert.Zero(t, entry.OrderCount)
	}

	profit, err = svc.Profit(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Len(t, profit, 3)

	profit, err = svc.Profit(context.Background(), 0, MaxProfitMonths)
	require.NoError(t, err)
	assert.Len(t, profit, MaxProfitMonths)
}

func TestProfitRejectsMonthsItCannotReturn(t *testing.T) {
	svc := newDashboard(openDB(t))

	profit, err := svc.Profit(context.Background(), 0, MaxProfitMonths+30)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, profit)
}

func TestProfitAggregatesRevenueAndCost(t *testing.T) {
	db := openDB(t)
	svc := newDashboard(db)
	user := createUser(t, db, "profit@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 10, "25.00", "10.00")

	march := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	seedOrder(t, db, user.ID, models.OrderStatusDelivered, march,
		models.OrderItem{ProductID: shirt.ID, Name: "Shirt", Quantity: 2, Price: decimal.RequireFromString("25.00")})
	seedOrder(t, db, user.ID, models.OrderStatusPending, march.AddDate(0, -1, 0),
		models.OrderItem{ProductID: "deleted-product", Name: "Old", Quantity: 1, Price: decimal.RequireFromString("40.00")})
	seedOrder(t, db, user.ID, models.OrderStatusCancelled, march,
		models.OrderItem{ProductID: shirt.ID, Name: "Shirt", Quantity: 5, Price: decimal.RequireFromString("25.00")})

	profit, err := svc.Profit(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, profit, 2)

	current := profit[0]
	assert.Equal(t, 2026, current.Year)
	assert.Equal(t, 3, current.MonthNum)
	assert.Equal(t, "Mar", current.MonthShort)
	assert.True(t, current.Revenue.Equal(decimal.NewFromInt(50)), "cancelled orders are excluded")
	assert.True(t, current.Cost.Equal(decimal.NewFromInt(20)))
	assert.True(t, current.Profit.Equal(decimal.NewFromInt(30)))
	assert.True(t, current.ProfitMargin.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 1, current.OrderCount)
	assert.Equal(t, 2, current.TotalItemsSold)

	previous := profit[1]
	assert.Equal(t, "Feb 2026", previous.Month)
	assert.True(t, previous.Revenue.Equal(decimal.NewFromInt(40)))
	assert.True(t, previous.Cost.IsZero(), "missing products cost nothing")
	assert.True(t, previous.ProfitMargin.Equal(decimal.NewFromInt(100)))
}

func TestProfitForPastYearEndsInDecember(t *testing.T) {
	db := openDB(t)
	profit, err := newDashboard(db).Profit(context.Background(), 2024, 12)
	require.NoError(t, err)
	require.Len(t, profit, 12)
	assert.Equal(t, "Dec 2024", profit[0].Month)
	assert.Equal(t, "Jan 2024", profit[11].Month)
}

func TestLowStockSortsAndFlagsAlertLevel(t *testing.T) {
	db := openDB(t)
	svc := newDashboard(db)
	createProduct(t, db, "Plenty", 40, "10.00", "5.00")
	createProduct(t, db, "Seven", 7, "10.00", "5.00")
	createProduct(t, db, "Two", 2, "10.00", "5.00")
	noImage := createProduct(t, db, "Zero", 0, "10.00", "5.00")
	require.NoError(t, db.Model(noImage).Update("image", "").Error)

	low, err := svc.LowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, low, 3)

	assert.Equal(t, []string{"Zero", "Two", "Seven"}, []string{low[0].Name, low[1].Name, low[2].Name})
	assert.Equal(t, "critical", low[0].AlertLevel)
	assert.Equal(t, "critical", low[1].AlertLevel)
	assert.Equal(t, "warning", low[2].AlertLevel)
	assert.Equal(t, DefaultProductImage, low[0].Image)

	low, err = svc.LowStock(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, low, 2)
}

func TestAlertLevelBoundary(t *testing.T) {
	assert.Equal(t, "critical", AlertLevel(4))
	assert.Equal(t, "warning", AlertLevel(5))
}

func TestMetricsAndQuickStats(t *testing.T) {
	db := openDB(t)
	svc := newDashboard(db)
	user := createUser(t, db, "stats@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 0, "25.00", "10.00")

	seedOrder(t, db, user.ID, models.OrderStatusPending, dashboardNow.Add(-time.Hour),
		models.OrderItem{ProductID: shirt.ID, Name: "Shirt", Quantity: 1, Price: decimal.RequireFromString("10.01")})
	seedOrder(t, db, user.ID, models.OrderStatusDelivered, dashboardNow.AddDate(0, 0, -3),
		models.OrderItem{ProductID: shirt.ID, Name: "Shirt", Quantity: 2, Price: decimal.RequireFromString("25.00")})

	metrics, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, metrics.UsersCount)
	assert.EqualValues(t, 1, metrics.ProductsCount)
	assert.EqualValues(t, 2, metrics.OrdersCount)
	assert.True(t, metrics.Revenue.Equal(decimal.RequireFromString("60.01")), metrics.Revenue.String())

	stats, err := svc.QuickStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TodayOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.OutOfStockProducts)
}

func TestQuickStatsUsesStoreTimezone(t *testing.T) {
	db := openDB(t)
	karachi := time.FixedZone("PKT", 5*60*60)
	// 02:00 on the 15th in Karachi, still the 14th in UTC.
	now := time.Date(2026, time.March, 14, 21, 0, 0, 0, time.UTC)
	svc := NewDashboardService(repositories.NewDashboardRepository(db), repositories.NewOrderRepository(db), karachi).
		WithClock(func() time.Time { return now })
	user := createUser(t, db, "tz@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 3, "25.00", "10.00")
	item := models.OrderItem{ProductID: shirt.ID, Name: "Shirt", Quantity: 1, Price: decimal.RequireFromString("25.00")}

	seedOrder(t, db, user.ID, models.OrderStatusPending, time.Date(2026, time.March, 14, 20, 0, 0, 0, time.UTC), item)
	seedOrder(t, db, user.ID, models.OrderStatusPending, time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC), item)

	stats, err := svc.QuickStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TodayOrders, "only the order after local midnight counts")
	assert.EqualValues(t, 2, stats.PendingOrders)
}

func TestSalesTrendsFillsEveryDay(t *testing.T) {
	db := openDB(t)
	svc := newDashboard(db)
	user := createUser(t, db, "trend@vendoz.test")

	seedOrder(t, db, user.ID, models.OrderStatusPending, dashboardNow,
		models.OrderItem{ProductID: "p", Name: "A", Quantity: 1, Price: decimal.NewFromInt(12)})
	seedOrder(t, db, user.ID, models.OrderStatusPending, dashboardNow.Add(-time.Hour),
		models.OrderItem{ProductID: "p", Name: "B", Quantity: 1, Price: decimal.NewFromInt(8)})

	trends, err := svc.SalesTrends(context.Background(), "7days")
	require.NoError(t, err)
	require.Len(t, trends, 7)
	assert.Equal(t, "2026-03-09", trends[0].Date)
	assert.Equal(t, "2026-03-15", trends[6].Date)
	assert.Equal(t, 2, trends[6].OrderCount)
	assert.True(t, trends[6].DailyRevenue.Equal(decimal.NewFromInt(20)))

	trends, err = svc.SalesTrends(context.Background(), "bogus")
	require.NoError(t, err)
	assert.Len(t, trends, 30)
}
