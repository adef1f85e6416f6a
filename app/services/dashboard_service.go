package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLowStockThreshold = 10
	LowStockLimit            = 20
	CriticalStockLevel       = 5
	DefaultProfitMonths      = 12
	MaxProfitMonths          = 120
	RecentOrdersLimit        = 5
	DefaultProductImage      = "/images/default-product.png"
	GuestCustomerName        = "Guest Customer"
)

type Metrics struct {
	UsersCount    int64           `json:"usersCount"`
	ProductsCount int64           `json:"productsCount"`
	OrdersCount   int64           `json:"ordersCount"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type RecentOrderProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type RecentOrder struct {
	ID              string                 `json:"id"`
	Customer        string                 `json:"customer"`
	Email           string                 `json:"email"`
	Products        []RecentOrderProduct   `json:"products"`
	Total           decimal.Decimal        `json:"total"`
	Status          string                 `json:"status"`
	Date            time.Time              `json:"date"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

type LowStockProduct struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Stock      int             `json:"stock"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Category   string          `json:"category"`
	AlertLevel string          `json:"alertLevel"`
}

type MonthlyProfit struct {
	Month          string          `json:"month"`
	MonthShort     string          `json:"monthShort"`
	Year           int             `json:"year"`
	MonthNum       int             `json:"monthNum"`
	Revenue        decimal.Decimal `json:"revenue"`
	Cost           decimal.Decimal `json:"cost"`
	Profit         decimal.Decimal `json:"profit"`
	OrderCount     int             `json:"orderCount"`
	TotalItemsSold int             `json:"totalItemsSold"`
	ProfitMargin   decimal.Decimal `json:"profitMargin"`
}

type QuickStats struct {
	TodayOrders        int64 `json:"todayOrders"`
	PendingOrders      int64 `json:"pendingOrders"`
	OutOfStockProducts int64 `json:"outOfStockProducts"`
}

type DailySales struct {
	Date         string          `json:"date"`
	DailyRevenue decimal.Decimal `json:"dailyRevenue"`
	OrderCount   int             `json:"orderCount"`
}

type DashboardService struct {
	repo      repositories.DashboardRepository
	orderRepo repositories.OrderRepository
	loc       *time.Location
	now       func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository, orderRepo repositories.OrderRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{repo: repo, orderRepo: orderRepo, loc: loc, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func (s *DashboardService) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

func (s *DashboardService) Metrics(ctx context.Context) (*Metrics, error) {
	m := &Metrics{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		m.UsersCount, err = s.repo.CountUsers(gctx)
		return
	})
	g.Go(func() (err error) {
		m.ProductsCount, err = s.repo.CountProducts(gctx)
		return
	})
	g.Go(func() (err error) {
		m.OrdersCount, err = s.repo.CountOrders(gctx)
		return
	})
	g.Go(func() (err error) {
		m.Revenue, err = s.repo.SumRevenue(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	m.Revenue = m.Revenue.Round(2)
	return m, nil
}

func (s *DashboardService) RecentOrders(ctx context.Context) ([]RecentOrder, error) {
	orders, err := s.orderRepo.FindRecent(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, err
	}

	out := make([]RecentOrder, 0, len(orders))
	for _, order := range orders {
		recent := RecentOrder{
			ID:              order.ID,
			Customer:        GuestCustomerName,
			Total:           order.TotalAmount.Round(2),
			Status:          order.OrderStatus,
			Date:            order.CreatedAt,
			ShippingAddress: order.ShippingAddress,
			Products:        make([]RecentOrderProduct, 0, len(order.Items)),
		}
		if order.User != nil {
			if order.User.FullName != "" {
				recent.Customer = order.User.FullName
			}
			recent.Email = order.User.Email
		}
		if recent.Status == "" {
			recent.Status = models.OrderStatusPending
		}

		for _, item := range order.Items {
			product := RecentOrderProduct{
				ID:       item.ProductID,
				Name:     item.Name,
				Image:    item.Image,
				Price:    item.Price,
				Quantity: item.Quantity,
			}
			if product.ID == "" {
				product.ID = item.ID
			}
			if product.Name == "" {
				product.Name = "Unknown Product"
			}
			if product.Image == "" {
				product.Image = DefaultProductImage
			}
			if product.Quantity == 0 {
				product.Quantity = 1
			}
			recent.Products = append(recent.Products, product)
		}
		out = append(out, recent)
	}
	return out, nil
}

// LowStock lists up to LowStockLimit products below threshold, lowest stock first.
func (s *DashboardService) LowStock(ctx context.Context, threshold int) ([]LowStockProduct, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	products, err := s.repo.LowStock(ctx, threshold, LowStockLimit)
	if err != nil {
		return nil, err
	}

	out := make([]LowStockProduct, 0, len(products))
	for _, p := range products {
		item := LowStockProduct{
			ID:         p.ID,
			Name:       p.Name,
			Stock:      p.Stock,
			Image:      p.Image,
			Price:      p.Price,
			Cost:       p.Cost,
			Category:   p.Category,
			AlertLevel: AlertLevel(p.Stock),
		}
		if item.Image == "" {
			item.Image = DefaultProductImage
		}
		out = append(out, item)
	}
	return out, nil
}

func AlertLevel(stock int) string {
	if stock < CriticalStockLevel {
		return "critical"
	}
	return "warning"
}

type monthKey struct {
	year  int
	month time.Month
}

type monthAgg struct {
	revenue decimal.Decimal
	cost    decimal.Decimal
	orders  map[string]struct{}
	items   int
}

// Profit returns exactly months entries ending at the current month (or December of a past
// year), newest first. Months without sales are zero-filled and cancelled orders are ignored.
func (s *DashboardService) Profit(ctx context.Context, year, months int) ([]MonthlyProfit, error) {
	if months <= 0 {
		months = DefaultProfitMonths
	}
	if months > MaxProfitMonths {
		return nil, invalid(fmt.Sprintf("months must be at most %d", MaxProfitMonths))
	}

	today := s.today()
	anchor := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
	if year > 0 && year < today.Year() {
		anchor = time.Date(year, time.December, 1, 0, 0, 0, 0, s.loc)
	}
	from := anchor.AddDate(0, -(months - 1), 0)
	to := anchor.AddDate(0, 1, 0)

	orders, err := s.repo.OrdersBetween(ctx, from, to, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0)
	seen := map[string]struct{}{}
	for _, order := range orders {
		for _, item := range order.Items {
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}
	costs, err := s.repo.ProductCosts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	buckets := map[monthKey]*monthAgg{}
	for _, order := range orders {
		created := order.CreatedAt.In(s.loc)
		key := monthKey{created.Year(), created.Month()}
		agg, ok := buckets[key]
		if !ok {
			agg = &monthAgg{orders: map[string]struct{}{}}
			buckets[key] = agg
		}
		for _, item := range order.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			agg.revenue = agg.revenue.Add(item.Price.Mul(qty))
			agg.cost = agg.cost.Add(costs[item.ProductID].Mul(qty))
			agg.items += item.Quantity
			agg.orders[order.ID] = struct{}{}
		}
	}

	out := make([]MonthlyProfit, 0, months)
	for i := 0; i < months; i++ {
		month := anchor.AddDate(0, -i, 0)
		entry := MonthlyProfit{
			Month:        month.Format("Jan 2006"),
			MonthShort:   month.Format("Jan"),
			Year:         month.Year(),
			MonthNum:     int(month.Month()),
			Revenue:      decimal.Zero,
			Cost:         decimal.Zero,
			Profit:       decimal.Zero,
			ProfitMargin: decimal.Zero,
		}
		if agg, ok := buckets[monthKey{month.Year(), month.Month()}]; ok {
			profit := agg.revenue.Sub(agg.cost)
			entry.Revenue = agg.revenue.Round(2)
			entry.Cost = agg.cost.Round(2)
			entry.Profit = profit.Round(2)
			entry.OrderCount = len(agg.orders)
			entry.TotalItemsSold = agg.items
			if !agg.revenue.IsZero() {
				entry.ProfitMargin = profit.Div(agg.revenue).Mul(decimal.NewFromInt(100)).Round(2)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *DashboardService) QuickStats(ctx context.Context) (*QuickStats, error) {
	stats := &QuickStats{}
	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TodayOrders, err = s.repo.CountOrdersBetween(gctx, today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		stats.PendingOrders, err = s.repo.CountOrdersByStatus(gctx, models.OrderStatusPending)
		return
	})
	g.Go(func() (err error) {
		stats.OutOfStockProducts, err = s.repo.CountOutOfStock(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// TrendDays maps a period query value to a number of days. Unknown values mean 30.
func TrendDays(period string) int {
	switch period {
	case "7days":
		return 7
	case "90days":
		return 90
	default:
		return 30
	}
}

// SalesTrends returns one entry per day for the period, oldest first.
func (s *DashboardService) SalesTrends(ctx context.Context, period string) ([]DailySales, error) {
	days := TrendDays(period)
	today := s.today()
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)

	orders, err := s.repo.OrdersBetween(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DailySales{}
	for _, order := range orders {
		day := order.CreatedAt.In(s.loc).Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &DailySales{Date: day, DailyRevenue: decimal.Zero}
			byDay[day] = entry
		}
		entry.DailyRevenue = entry.DailyRevenue.Add(order.TotalAmount)
		entry.OrderCount++
	}

	out := make([]DailySales, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		if entry, ok := byDay[day]; ok {
			entry.DailyRevenue = entry.DailyRevenue.Round(2)
			out = append(out, *entry)
			continue
		}
		out = append(out, DailySales{Date: day, DailyRevenue: decimal.Zero})
	}
	return out, nil
}
