package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type MessageHandler struct {
	Base
	messages *services.MessageService
}

func NewMessageHandler(base Base, messages *services.MessageService) *MessageHandler {
	return &MessageHandler{Base: base, messages: messages}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		zap.S().Errorf("ListMessages: %v", err)
		h.serverError(w, "error", "Failed to fetch messages", err)
		return
	}
	h.render.JSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.ContactInput
	if !h.decode(w, r, &input) {
		return
	}

	message, err := h.messages.Create(r.Context(), input)
	if err != nil {
		zap.S().Errorf("CreateMessage: %v", err)
		h.serverError(w, "error", "Failed to save message", err)
		return
	}
	h.render.JSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.messages.Delete(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, services.ErrMessageNotFound) {
		h.render.JSON(w, http.StatusNotFound, map[string]interface{}{"error": "Message not found"})
		return
	}
	if err != nil {
		zap.S().Errorf("DeleteMessage: %v", err)
		h.serverError(w, "error", "Failed to delete message", err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *MessageHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var input services.ReplyInput
	if !h.decode(w, r, &input) {
		return
	}

	result, err := h.messages.Reply(r.Context(), input)
	switch {
	case err == nil:
		h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"success":        true,
			"updatedMessage": result.Message,
			"emailSent":      result.EmailSent,
			"persisted":      result.Persisted,
		})
	case errors.Is(err, services.ErrMessageNotFound):
		h.render.JSON(w, http.StatusNotFound, map[string]interface{}{"error": "Message not found"})
	case errors.Is(err, services.ErrReplyNotPersisted):
		zap.S().Errorf("ReplyMessage: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":     "Reply was sent but could not be saved",
			"details":   err.Error(),
			"emailSent": true,
			"persisted": false,
		})
	default:
		zap.S().Errorf("ReplyMessage: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":     "Failed to send reply",
			"details":   err.Error(),
			"emailSent": false,
			"persisted": false,
		})
	}
}
