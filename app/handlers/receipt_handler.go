package handlers

import (
	"fmt"
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	Base
	orders   *services.OrderService
	receipts *services.ReceiptService
}

func NewReceiptHandler(base Base, orders *services.OrderService, receipts *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Base: base, orders: orders, receipts: receipts}
}

// Download renders the whole PDF before the first byte goes out, so every failure up to
// that point can still be answered with JSON.
func (h *ReceiptHandler) Download(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "Receipt", err)
		return
	}
	if !canSeeOrder(identity, order) {
		h.message(w, http.StatusForbidden, "Forbidden")
		return
	}

	pdf, err := h.receipts.Render(order)
	if err != nil {
		zap.S().Errorf("Receipt: rendering order %s: %v", order.ID, err)
		h.serverError(w, "message", "Failed to generate receipt", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ReceiptFilename(order.ID)))
	w.Header().Set("Content-Length", fmt.Sprint(len(pdf)))
	if err := h.render.Data(w, http.StatusOK, pdf); err != nil {
		zap.S().Warnf("Receipt: streaming order %s: %v", order.ID, err)
	}
}
