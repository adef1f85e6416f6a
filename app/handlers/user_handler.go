package handlers

import (
	"net/http"

	"github.com/Rakhulsr/vendoz/app/middlewares"
	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	Base
	users *services.UserService
}

func NewUserHandler(base Base, users *services.UserService) *UserHandler {
	return &UserHandler{Base: base, users: users}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input services.SignupInput
	if !h.decode(w, r, &input) {
		return
	}

	var caller *services.Identity
	if identity, ok := middlewares.IdentityFrom(r.Context()); ok {
		caller = &identity
	}

	user, err := h.users.Signup(r.Context(), input, caller)
	if err != nil {
		h.fail(w, "Signup", err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, "ListUsers", err)
		return
	}
	h.render.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, "GetUser", err)
		return
	}
	h.render.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input services.UpdateUserInput
	if !h.decode(w, r, &input) {
		return
	}

	user, err := h.users.Update(r.Context(), mux.Vars(r)["id"], input, caller)
	if err != nil {
		h.fail(w, "UpdateUser", err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated",
		"user":    user,
	})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, "DeleteUser", err)
		return
	}
	h.message(w, http.StatusOK, "User deleted")
}
