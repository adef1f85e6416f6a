package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/vendoz/app/middlewares"
	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Base
	orders *services.OrderService
	carts  *services.CartService
}

func NewOrderHandler(base Base, orders *services.OrderService, carts *services.CartService) *OrderHandler {
	return &OrderHandler{Base: base, orders: orders, carts: carts}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input services.PlaceOrderInput
	if !h.decode(w, r, &input) {
		return
	}

	order, created, err := h.orders.PlaceOrder(r.Context(), identity.UserID, input)
	if err != nil {
		h.fail(w, "CreateOrder", err)
		return
	}

	// A cart that cannot be cleared never fails the order.
	if err := h.carts.Clear(r.Context(), identity.UserID); err != nil {
		zap.S().Warnf("CreateOrder: clearing cart of user %s: %v", identity.UserID, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.render.JSON(w, status, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.fail(w, "ListOrders", err)
		return
	}
	h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, "MyOrders", err)
		return
	}
	h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "GetOrder", err)
		return
	}
	if !canSeeOrder(identity, order) {
		h.message(w, http.StatusForbidden, "Forbidden")
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}

type statusUpdateResponse struct {
	*models.Order
	StockAdjustments []services.StockAdjustment `json:"stockAdjustments"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input services.StatusUpdateInput
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		h.fail(w, "UpdateOrderStatus", err)
		return
	}
	h.render.JSON(w, http.StatusOK, statusUpdateResponse{Order: result.Order, StockAdjustments: result.Adjustments})
}

func (h *OrderHandler) TestEmail(w http.ResponseWriter, r *http.Request) {
	to, err := h.orders.SendTestEmail(r.Context())
	if err != nil {
		zap.S().Errorf("TestEmail: %v", err)
		if errors.Is(err, services.ErrMailerNotConfigured) {
			h.message(w, http.StatusServiceUnavailable, "Mailer is not configured")
			return
		}
		h.serverError(w, "message", "Test email failed", err)
		return
	}
	h.message(w, http.StatusOK, "Test email sent to "+to)
}

func canSeeOrder(identity services.Identity, order *models.Order) bool {
	return order.UserID == identity.UserID || middlewares.HasCapability(identity.Role, middlewares.ManageOrders)
}
