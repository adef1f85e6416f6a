package services

import (
	"errors"

	"github.com/Rakhulsr/vendoz/app/repositories"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCartNotFound        = errors.New("cart not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("forbidden")
	ErrEmailTaken          = repositories.ErrEmailTaken
)

// ValidationError carries a message that is safe to show to the client as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return "Not enough stock for " + e.ProductName
}

func (e *InsufficientStockError) Unwrap() error {
	return repositories.ErrInsufficientStock
}
