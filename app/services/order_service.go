package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	Product  string          `json:"product" validate:"required"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput       `json:"items" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	PaymentStatus   string                 `json:"paymentStatus"`
	TotalAmount     *decimal.Decimal       `json:"totalAmount" validate:"required"`
	PhoneNumber     string                 `json:"phoneNumber"`
}

type StatusUpdateInput struct {
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

type StockAdjustment struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type StatusUpdateResult struct {
	Order       *models.Order
	Adjustments []StockAdjustment
}

type OrderService struct {
	db            *gorm.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	productRepo   repositories.ProductRepositoryImpl
	userRepo      repositories.UserRepositoryImpl
	mailer        MailSender
	testRecipient string
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	mailer MailSender,
	testRecipient string,
) *OrderService {
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		testRecipient: testRecipient,
	}
}

// PlaceOrder creates an order for userID, or rewrites the caller's pending order in place.
// The bool result is true when a new order was inserted.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*models.Order, bool, error) {
	if input.TotalAmount == nil || input.TotalAmount.IsNegative() {
		return nil, false, invalid("totalAmount must be a non-negative number")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, false, err
	}

	paymentStatus := strings.ToLower(strings.TrimSpace(input.PaymentStatus))
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, false, invalid(fmt.Sprintf("invalid paymentStatus %q", input.PaymentStatus))
	}

	shipping := input.ShippingAddress
	if shipping.PhoneNumber == "" {
		shipping.PhoneNumber = input.PhoneNumber
	}

	pending, err := s.orderRepo.FindPendingByUser(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up pending order: %w", err)
	}

	if pending != nil {
		pending.ShippingAddress = shipping
		pending.PaymentMethod = input.PaymentMethod
		pending.PaymentStatus = paymentStatus
		pending.TotalAmount = *input.TotalAmount

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.orderRepo.UpdateDetails(ctx, tx, pending); err != nil {
				return err
			}
			return s.orderItemRepo.ReplaceItems(ctx, tx, pending.ID, items)
		})
		if err != nil {
			return nil, false, fmt.Errorf("failed to update pending order %s: %w", pending.ID, err)
		}

		updated, err := s.orderRepo.GetByID(ctx, pending.ID)
		if err != nil {
			return nil, false, err
		}
		zap.S().Infof("Pending order %s of user %s overwritten with %d items", pending.ID, userID, len(items))
		return updated, false, nil
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: shipping,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   paymentStatus,
		OrderStatus:     models.OrderStatusPending,
		TotalAmount:     *input.TotalAmount,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, false, err
	}
	if created == nil {
		created = order
	}

	s.sendConfirmation(user.Email, created)
	return created, true, nil
}

func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]models.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, invalid("order must contain at least one item")
	}

	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.Product)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := products[in.Product]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, in.Product)
		}
		if in.Quantity < 1 {
			return nil, invalid("quantity must be at least 1")
		}
		if in.Price.IsNegative() {
			return nil, invalid("price must be a non-negative number")
		}

		item := models.OrderItem{
			ProductID: product.ID,
			Name:      strings.TrimSpace(in.Name),
			Quantity:  in.Quantity,
			Price:     in.Price,
			Image:     in.Image,
		}
		if item.Name == "" {
			item.Name = product.Name
		}
		if item.Image == "" {
			item.Image = product.Image
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *OrderService) sendConfirmation(to string, order *models.Order) {
	if to == "" {
		return
	}
	html, text, err := BuildOrderConfirmationEmail(order)
	if err != nil {
		zap.S().Errorf("Failed to render confirmation for order %s: %v", order.ID, err)
		return
	}
	if err := s.mailer.SendHTMLEmail(to, OrderConfirmationSubject, html, text); err != nil {
		zap.S().Warnf("Order %s saved but confirmation email to %s failed: %v", order.ID, to, err)
	}
}

func (s *OrderService) List(ctx context.Context, status string) ([]models.Order, error) {
	return s.orderRepo.FindAll(ctx, strings.ToLower(strings.TrimSpace(status)))
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.FindByUserID(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus applies a status change. Moving into shipped or delivered from any other
// status takes the ordered quantities out of stock in the same transaction; if any line
// cannot be covered nothing is written.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, input StatusUpdateInput) (*StatusUpdateResult, error) {
	orderStatus := strings.ToLower(strings.TrimSpace(input.OrderStatus))
	paymentStatus := strings.ToLower(strings.TrimSpace(input.PaymentStatus))

	if orderStatus != "" && !models.ValidOrderStatus(orderStatus) {
		return nil, invalid(fmt.Sprintf("invalid orderStatus %q", input.OrderStatus))
	}
	if paymentStatus != "" && !models.ValidPaymentStatus(paymentStatus) {
		return nil, invalid(fmt.Sprintf("invalid paymentStatus %q", input.PaymentStatus))
	}

	result := &StatusUpdateResult{Adjustments: []StockAdjustment{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}

		previous := order.OrderStatus
		updates := map[string]interface{}{}
		if orderStatus != "" {
			updates["order_status"] = orderStatus
		}
		if paymentStatus != "" {
			updates["payment_status"] = paymentStatus
		}

		if models.IsFulfilled(orderStatus) && !models.IsFulfilled(previous) {
			for _, item := range order.Items {
				applied, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
				if err != nil {
					if errors.Is(err, repositories.ErrInsufficientStock) {
						return &InsufficientStockError{ProductID: item.ProductID, ProductName: item.Name, Requested: item.Quantity}
					}
					return err
				}
				if !applied {
					zap.S().Warnf("Order %s: product %s no longer exists, stock left untouched", order.ID, item.ProductID)
					continue
				}
				result.Adjustments = append(result.Adjustments, StockAdjustment{
					ProductID: item.ProductID,
					Name:      item.Name,
					Quantity:  item.Quantity,
				})
			}
		}

		if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, updates); err != nil {
			return fmt.Errorf("failed to update order %s: %w", order.ID, err)
		}

		updated, err := s.orderRepo.GetByIDForUpdate(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		result.Order = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infof("Order %s status updated (order=%q payment=%q, %d stock adjustments)", id, orderStatus, paymentStatus, len(result.Adjustments))
	return result, nil
}

// SendTestEmail mails a sample confirmation to the configured sender address.
func (s *OrderService) SendTestEmail(ctx context.Context) (string, error) {
	if s.testRecipient == "" {
		return "", ErrMailerNotConfigured
	}
	sample := &models.Order{
		ID:            "12345",
		PaymentStatus: models.PaymentStatusPaid,
		TotalAmount:   decimal.NewFromInt(100),
		Items: []models.OrderItem{
			{Name: "Test Item", Quantity: 1, Price: decimal.NewFromInt(100)},
		},
		ShippingAddress: models.ShippingAddress{Address: "Test Street", City: "Lahore", PhoneNumber: "12345"},
	}
	html, text, err := BuildOrderConfirmationEmail(sample)
	if err != nil {
		return "", err
	}
	if err := s.mailer.SendHTMLEmail(s.testRecipient, OrderConfirmationSubject, html, text); err != nil {
		return "", err
	}
	return s.testRecipient, nil
}
