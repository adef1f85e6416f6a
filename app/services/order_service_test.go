package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderInput(total string, items ...OrderItemInput) PlaceOrderInput {
	amount := decimal.RequireFromString(total)
	return PlaceOrderInput{
		Items: items,
		ShippingAddress: models.ShippingAddress{
			Address: "12 Market Street", City: "Lahore", Country: "PK", PostalCode: "54000",
		},
		PaymentMethod: "card",
		TotalAmount:   &amount,
		PhoneNumber:   "0300-1234567",
	}
}

func TestPlaceOrderCreatesAndSendsConfirmation(t *testing.T) {
	db := openDB(t)
	mailer := &fakeMailer{}
	svc := newOrderService(db, mailer)
	user := createUser(t, db, "buyer@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 10, "25.00", "10.00")

	order, created, err := svc.PlaceOrder(context.Background(), user.ID,
		orderInput("50.00", OrderItemInput{Product: shirt.ID, Quantity: 2, Price: decimal.RequireFromString("25.00")}))
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Shirt", order.Items[0].Name, "name snapshot filled from the product")
	assert.Equal(t, "Shirt.jpg", order.Items[0].Image)
	assert.Equal(t, "0300-1234567", order.ShippingAddress.PhoneNumber)
	require.NotNil(t, order.Customer)
	assert.Equal(t, "buyer@vendoz.test", order.Customer.Email)

	require.Equal(t, 1, mailer.count())
	assert.Equal(t, "buyer@vendoz.test", mailer.sent[0].To)
	assert.Equal(t, OrderConfirmationSubject, mailer.sent[0].Subject)
}

func TestPlaceOrderOverwritesPendingOrder(t *testing.T) {
	db := openDB(t)
	mailer := &fakeMailer{}
	svc := newOrderService(db, mailer)
	user := createUser(t, db, "repeat@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 10, "25.00", "10.00")
	hat := createProduct(t, db, "Hat", 10, "15.00", "5.00")
	ctx := context.Background()

	first, created, err := svc.PlaceOrder(ctx, user.ID,
		orderInput("25.00", OrderItemInput{Product: shirt.ID, Quantity: 1, Price: decimal.RequireFromString("25.00")}))
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.PlaceOrder(ctx, user.ID, orderInput("45.00",
		OrderItemInput{Product: hat.ID, Quantity: 3, Price: decimal.RequireFromString("15.00")}))
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Items, 1)
	assert.Equal(t, hat.ID, second.Items[0].ProductID)
	assert.Equal(t, 3, second.Items[0].Quantity)
	assert.True(t, second.TotalAmount.Equal(decimal.RequireFromString("45.00")))

	var orders, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 1, items, "old items are replaced, not appended")
	assert.Equal(t, 1, mailer.count(), "only the insert sends a confirmation")
}

func TestPlaceOrderRejectsUnknownProduct(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{})
	user := createUser(t, db, "ghost@vendoz.test")

	_, _, err := svc.PlaceOrder(context.Background(), user.ID,
		orderInput("10.00", OrderItemInput{Product: "missing", Quantity: 1, Price: decimal.NewFromInt(10)}))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrderSwallowsMailFailure(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{err: errSMTPDown})
	user := createUser(t, db, "nomail@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 10, "25.00", "10.00")

	order, created, err := svc.PlaceOrder(context.Background(), user.ID,
		orderInput("25.00", OrderItemInput{Product: shirt.ID, Quantity: 1, Price: decimal.RequireFromString("25.00")}))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, order.ID)
}

func TestUpdateStatusDecrementsStockOnShipping(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{})
	user := createUser(t, db, "ship@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 5, "25.00", "10.00")
	hat := createProduct(t, db, "Hat", 1, "15.00", "5.00")
	ctx := context.Background()

	order, _, err := svc.PlaceOrder(ctx, user.ID, orderInput("65.00",
		OrderItemInput{Product: shirt.ID, Quantity: 2, Price: decimal.RequireFromString("25.00")},
		OrderItemInput{Product: hat.ID, Quantity: 1, Price: decimal.RequireFromString("15.00")},
	))
	require.NoError(t, err)

	result, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{OrderStatus: "Shipped", PaymentStatus: "PAID"})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusShipped, result.Order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPaid, result.Order.PaymentStatus)
	assert.Len(t, result.Adjustments, 2)
	assert.Equal(t, 3, stockOf(t, db, shirt.ID))
	assert.Equal(t, 0, stockOf(t, db, hat.ID))

	// shipped -> delivered is not a new fulfilment
	result, err = svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{OrderStatus: models.OrderStatusDelivered})
	require.NoError(t, err)
	assert.Empty(t, result.Adjustments)
	assert.Equal(t, 3, stockOf(t, db, shirt.ID))
}

func TestUpdateStatusInsufficientStockRollsBackEverything(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{})
	user := createUser(t, db, "short@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 5, "25.00", "10.00")
	hat := createProduct(t, db, "Hat", 1, "15.00", "5.00")
	ctx := context.Background()

	order, _, err := svc.PlaceOrder(ctx, user.ID, orderInput("95.00",
		OrderItemInput{Product: shirt.ID, Quantity: 2, Price: decimal.RequireFromString("25.00")},
		OrderItemInput{Product: hat.ID, Quantity: 3, Price: decimal.RequireFromString("15.00")},
	))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{OrderStatus: models.OrderStatusShipped})
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Not enough stock for Hat", stockErr.Error())
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	assert.Equal(t, 5, stockOf(t, db, shirt.ID), "earlier decrement must be rolled back")
	assert.Equal(t, 1, stockOf(t, db, hat.ID))

	reloaded, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.OrderStatus)
}

func TestUpdateStatusSkipsDeletedProducts(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{})
	user := createUser(t, db, "gone@vendoz.test")
	shirt := createProduct(t, db, "Shirt", 5, "25.00", "10.00")
	hat := createProduct(t, db, "Hat", 5, "15.00", "5.00")
	ctx := context.Background()

	order, _, err := svc.PlaceOrder(ctx, user.ID, orderInput("40.00",
		OrderItemInput{Product: shirt.ID, Quantity: 1, Price: decimal.RequireFromString("25.00")},
		OrderItemInput{Product: hat.ID, Quantity: 1, Price: decimal.RequireFromString("15.00")},
	))
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.Product{}, "id = ?", hat.ID).Error)

	result, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateInput{OrderStatus: models.OrderStatusDelivered})
	require.NoError(t, err)
	require.Len(t, result.Adjustments, 1)
	assert.Equal(t, shirt.ID, result.Adjustments[0].ProductID)
	assert.Equal(t, 4, stockOf(t, db, shirt.ID))
}

func TestUpdateStatusValidatesEnums(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), "whatever", StatusUpdateInput{OrderStatus: "teleported"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = svc.UpdateStatus(context.Background(), "missing", StatusUpdateInput{OrderStatus: models.OrderStatusShipped})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	db := openDB(t)
	svc := newOrderService(db, &fakeMailer{})
	shirt := createProduct(t, db, "Shirt", 50, "25.00", "10.00")
	ctx := context.Background()

	for _, email := range []string{"a@vendoz.test", "b@vendoz.test"} {
		user := createUser(t, db, email)
		_, _, err := svc.PlaceOrder(ctx, user.ID,
			orderInput("25.00", OrderItemInput{Product: shirt.ID, Quantity: 1, Price: decimal.RequireFromString("25.00")}))
		require.NoError(t, err)
	}
	all, err := svc.List(ctx, "all")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.UpdateStatus(ctx, all[0].ID, StatusUpdateInput{OrderStatus: models.OrderStatusCancelled})
	require.NoError(t, err)

	cancelled, err := svc.List(ctx, "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, all[0].ID, cancelled[0].ID)
	assert.NotNil(t, cancelled[0].Customer)
}

func TestSendTestEmail(t *testing.T) {
	db := openDB(t)
	mailer := &fakeMailer{}
	svc := newOrderService(db, mailer)

	to, err := svc.SendTestEmail(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "store@vendoz.test", to)
	require.Equal(t, 1, mailer.count())
	assert.Contains(t, mailer.sent[0].HTML, "12345")
}
