package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

// createMessageRequest is the JSON body for POST /api/messages.
type createMessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
}

// updateMessageRequest is the JSON body for PUT /api/messages/{id}.
type updateMessageRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	now := s.now().UTC()
	m := &model.ContactMessage{
		Message:   req.Message,
		Status:    model.MessagePending,
		UserID:    req.UserID,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.createWithRetry(r.Context(), "contact_message", func(ctx context.Context) error {
		return s.store.CreateContactMessage(ctx, m)
	}); err != nil {
		s.writeStoreError(w, err, "message", "create")
		return
	}

	s.writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	messages, total, err := s.store.ListContactMessages(r.Context(), p)
	if err != nil {
		s.writeStoreError(w, err, "messages", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(messages, total, p))
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.GetContactMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "message", "get")
		return
	}

	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	var req updateMessageRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	m, err := s.store.GetContactMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "message", "get")
		return
	}

	m.Status = req.Status
	m.UpdatedAt = s.now().UTC()
	if err := m.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.store.UpdateContactMessage(r.Context(), m); err != nil {
		s.writeStoreError(w, err, "message", "update")
		return
	}

	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteContactMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err, "message", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
