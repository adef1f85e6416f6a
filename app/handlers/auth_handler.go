package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/services"
)

type AuthHandler struct {
	Base
	users *services.UserService
}

func NewAuthHandler(base Base, users *services.UserService) *AuthHandler {
	return &AuthHandler{Base: base, users: users}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.users.Login(r.Context(), input)
	if errors.Is(err, services.ErrUserNotFound) {
		h.message(w, http.StatusBadRequest, "user not found")
		return
	}
	if err != nil {
		h.fail(w, "Login", err)
		return
	}

	h.render.JSON(w, http.StatusOK, result)
}

// Me returns the account behind the bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, "Me", err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"user": struct {
			models.UserSummary
			Role string `json:"role"`
		}{
			UserSummary: models.UserSummary{ID: user.ID, FullName: user.FullName, Email: user.Email},
			Role:        user.Role,
		},
	})
}
