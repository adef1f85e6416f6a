package handlers

import (
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/gorilla/mux"
)

type CartHandler struct {
	Base
	carts *services.CartService
}

func NewCartHandler(base Base, carts *services.CartService) *CartHandler {
	return &CartHandler{Base: base, carts: carts}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetUserCart(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, "GetCart", err)
		return
	}
	h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !h.decode(w, r, &req) {
		return
	}

	cart, err := h.carts.AddItemToCart(r.Context(), mux.Vars(r)["userId"], req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, "AddToCart", err)
		return
	}
	h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cart, err := h.carts.RemoveItemFromCart(r.Context(), vars["userId"], vars["productId"])
	if err != nil {
		h.fail(w, "RemoveFromCart", err)
		return
	}
	h.render.JSON(w, http.StatusOK, cart)
}
