package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/Rakhulsr/vendoz/app/helpers"
	"github.com/Rakhulsr/vendoz/app/middlewares"
	"github.com/Rakhulsr/vendoz/app/repositories"
	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// Base carries what every handler needs to answer a request.
type Base struct {
	render   *render.Render
	validate *validator.Validate
	dev      bool
}

func NewBase(rnd *render.Render, development bool) Base {
	return Base{render: rnd, validate: NewValidator(), dev: development}
}

// NewValidator reports field errors under their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. It writes the 400 itself and
// returns false when the request should stop.
func (b Base) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		b.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Invalid request body",
		})
		return false
	}
	return b.check(w, dst)
}

func (b Base) check(w http.ResponseWriter, dst interface{}) bool {
	if err := b.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			b.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": helpers.FirstValidationMessage(verrs),
				"errors":  helpers.FormatValidationErrors(verrs),
			})
			return false
		}
		b.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"message": err.Error()})
		return false
	}
	return true
}

func (b Base) message(w http.ResponseWriter, status int, msg string) {
	b.render.JSON(w, status, map[string]interface{}{"message": msg})
}

// serverError answers 500 and only exposes err in development.
func (b Base) serverError(w http.ResponseWriter, key, msg string, err error) {
	body := map[string]interface{}{key: msg}
	if b.dev && err != nil {
		body["details"] = err.Error()
	}
	b.render.JSON(w, http.StatusInternalServerError, body)
}

var notFoundMessages = map[error]string{
	services.ErrOrderNotFound:       "Order not found",
	services.ErrProductNotFound:     "Product not found",
	services.ErrUserNotFound:        "User not found",
	services.ErrCartNotFound:        "Cart not found",
	services.ErrMessageNotFound:     "Message not found",
	services.ErrTestimonialNotFound: "Testimonial not found",
}

// fail maps a service error onto a status code and a {message} body.
func (b Base) fail(w http.ResponseWriter, op string, err error) {
	for sentinel, msg := range notFoundMessages {
		if errors.Is(err, sentinel) {
			b.message(w, http.StatusNotFound, msg)
			return
		}
	}

	var verr *services.ValidationError
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &verr):
		b.message(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &stockErr):
		b.message(w, http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, repositories.ErrEmailTaken):
		b.message(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		b.message(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		b.message(w, http.StatusForbidden, "Forbidden")
	default:
		zap.S().Errorf("%s: %v", op, err)
		b.serverError(w, "message", "Server error", err)
	}
}

func (b Base) identity(w http.ResponseWriter, r *http.Request) (services.Identity, bool) {
	identity, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		b.message(w, http.StatusUnauthorized, "No token")
	}
	return identity, ok
}
