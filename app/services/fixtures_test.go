package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Rakhulsr/vendoz/app/db/testdb"
	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errSMTPDown = errors.New("smtp down")

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: htmlBody})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{FullName: "Jane Buyer", Email: email, Password: "secret123"}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createProduct(t *testing.T, db *gorm.DB, name string, stock int, price, cost string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Cost:     decimal.RequireFromString(cost),
		Stock:    stock,
		Image:    name + ".jpg",
		Category: models.CategoryMen,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func newOrderService(db *gorm.DB, mailer MailSender) *OrderService {
	return NewOrderService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewUserRepository(db),
		mailer,
		"store@vendoz.test",
	)
}

func openDB(t *testing.T) *gorm.DB {
	return testdb.Open(t)
}
