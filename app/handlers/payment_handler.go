package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Base
	payments *services.PaymentService
}

func NewPaymentHandler(base Base, payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Base: base, payments: payments}
}

// CreateIntent exchanges an amount in minor units for a gateway client secret.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input services.PaymentIntentInput
	if !h.decode(w, r, &input) {
		return
	}

	intent, err := h.payments.CreateIntent(r.Context(), identity.UserID, input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": verr.Message})
			return
		}
		zap.S().Errorf("CreatePaymentIntent: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	h.render.JSON(w, http.StatusOK, intent)
}
