package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
	PaymentStatusUnpaid   = "unpaid"
)

type ShippingAddress struct {
	Address     string `gorm:"size:255" json:"address"`
	City        string `gorm:"size:100" json:"city"`
	Country     string `gorm:"size:100" json:"country"`
	PostalCode  string `gorm:"size:20" json:"postalCode"`
	PhoneNumber string `gorm:"size:50" json:"phoneNumber"`
}

type Order struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"_id"`
	UserID          string          `gorm:"size:36;index" json:"userId"`
	User            *User           `gorm:"foreignKey:UserID" json:"-"`
	Customer        *UserSummary    `gorm:"-" json:"user"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"paymentMethod"`
	PaymentStatus   string          `gorm:"size:20;not null;default:'unpaid'" json:"paymentStatus"`
	OrderStatus     string          `gorm:"size:20;not null;default:'pending';index" json:"orderStatus"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"totalAmount"`
	CreatedAt       time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *Order) BeforeSave(tx *gorm.DB) (err error) {
	o.PaymentStatus = strings.ToLower(strings.TrimSpace(o.PaymentStatus))
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentStatusUnpaid
	}
	if o.OrderStatus == "" {
		o.OrderStatus = OrderStatusPending
	}
	return
}

// AfterFind exposes the preloaded user as the summary the storefront expects.
func (o *Order) AfterFind(tx *gorm.DB) (err error) {
	if o.User != nil {
		o.Customer = &UserSummary{ID: o.User.ID, FullName: o.User.FullName, Email: o.User.Email}
	}
	return
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(status string) bool {
	switch strings.ToLower(status) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded, PaymentStatusUnpaid:
		return true
	}
	return false
}

// IsFulfilled reports whether stock has already left the warehouse for this status.
func IsFulfilled(status string) bool {
	return status == OrderStatusShipped || status == OrderStatusDelivered
}
