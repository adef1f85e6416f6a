package handlers

import (
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/Rakhulsr/vendoz/app/utils/uploads"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Base
	products *services.ProductService
	storage  *uploads.Storage
}

func NewProductHandler(base Base, products *services.ProductService, storage *uploads.Storage) *ProductHandler {
	return &ProductHandler{Base: base, products: products, storage: storage}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.fail(w, "ListProducts", err)
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "GetProduct", err)
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) readInput(w http.ResponseWriter, r *http.Request) (services.ProductInput, bool) {
	if err := parseForm(r); err != nil {
		h.message(w, http.StatusBadRequest, "Invalid form data")
		return services.ProductInput{}, false
	}

	input := services.ProductInput{
		Name:     formString(r, "name"),
		Category: formString(r, "category"),
	}
	var err error
	if input.Price, err = formDecimal(r, "price"); err != nil {
		h.message(w, http.StatusBadRequest, err.Error())
		return input, false
	}
	if input.Cost, err = formDecimal(r, "cost"); err != nil {
		h.message(w, http.StatusBadRequest, err.Error())
		return input, false
	}
	if input.Stock, err = formInt(r, "stock"); err != nil {
		h.message(w, http.StatusBadRequest, err.Error())
		return input, false
	}
	return input, true
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readInput(w, r)
	if !ok {
		return
	}

	image, err := saveUpload(r, h.storage)
	if err != nil {
		zap.S().Errorf("CreateProduct: saving upload: %v", err)
		h.serverError(w, "message", "Failed to store image", err)
		return
	}

	product, err := h.products.Create(r.Context(), input, image)
	if err != nil {
		h.storage.Remove(image)
		h.fail(w, "CreateProduct", err)
		return
	}
	h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readInput(w, r)
	if !ok {
		return
	}

	image, err := saveUpload(r, h.storage)
	if err != nil {
		zap.S().Errorf("UpdateProduct: saving upload: %v", err)
		h.serverError(w, "message", "Failed to store image", err)
		return
	}

	product, replaced, err := h.products.Update(r.Context(), mux.Vars(r)["id"], input, image)
	if err != nil {
		h.storage.Remove(image)
		h.fail(w, "UpdateProduct", err)
		return
	}
	h.storage.Remove(replaced)
	h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	image, err := h.products.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "DeleteProduct", err)
		return
	}
	h.storage.Remove(image)
	h.message(w, http.StatusOK, "Product deleted")
}
