package handlers

import (
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/Rakhulsr/vendoz/app/utils/uploads"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type TestimonialHandler struct {
	Base
	testimonials *services.TestimonialService
	storage      *uploads.Storage
}

func NewTestimonialHandler(base Base, testimonials *services.TestimonialService, storage *uploads.Storage) *TestimonialHandler {
	return &TestimonialHandler{Base: base, testimonials: testimonials, storage: storage}
}

func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonials.List(r.Context())
	if err != nil {
		h.fail(w, "ListTestimonials", err)
		return
	}
	h.render.JSON(w, http.StatusOK, testimonials)
}

func (h *TestimonialHandler) read(w http.ResponseWriter, r *http.Request) (services.TestimonialInput, string, bool) {
	if err := parseForm(r); err != nil {
		h.message(w, http.StatusBadRequest, "Invalid form data")
		return services.TestimonialInput{}, "", false
	}
	input := services.TestimonialInput{
		Name:    formString(r, "name"),
		Comment: formString(r, "comment"),
	}

	image, err := saveUpload(r, h.storage)
	if err != nil {
		zap.S().Errorf("Testimonial upload: %v", err)
		h.serverError(w, "message", "Failed to store image", err)
		return input, "", false
	}
	return input, image, true
}

func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, ok := h.read(w, r)
	if !ok {
		return
	}

	testimonial, err := h.testimonials.Create(r.Context(), input, image)
	if err != nil {
		h.storage.Remove(image)
		h.fail(w, "CreateTestimonial", err)
		return
	}
	h.render.JSON(w, http.StatusCreated, testimonial)
}

func (h *TestimonialHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, image, ok := h.read(w, r)
	if !ok {
		return
	}

	testimonial, replaced, err := h.testimonials.Update(r.Context(), mux.Vars(r)["id"], input, image)
	if err != nil {
		h.storage.Remove(image)
		h.fail(w, "UpdateTestimonial", err)
		return
	}
	h.storage.Remove(replaced)
	h.render.JSON(w, http.StatusOK, testimonial)
}

func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	image, err := h.testimonials.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "DeleteTestimonial", err)
		return
	}
	h.storage.Remove(image)
	h.message(w, http.StatusOK, "Testimonial deleted")
}
