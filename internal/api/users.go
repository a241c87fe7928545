package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
)

const minPasswordLen = 8

// registerRequest is the JSON body for POST /api/users.
type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Address     string `json:"address"`
}

// loginRequest is the JSON body for POST /api/users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse wraps a single user.
type userResponse struct {
	User *model.User `json:"user"`
}

// updateUserRequest is the JSON body for PUT /api/users/{id}.
type updateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	now := s.now().UTC()
	u := &model.User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        model.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if len(req.Password) < minPasswordLen {
		s.writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		s.writeError(w, http.StatusBadRequest, "password is too long")
		return
	}
	if err != nil {
		s.logger.Error("hash password", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}
	u.PasswordHash = string(hash)

	if err := s.createWithRetry(r.Context(), "user", func(ctx context.Context) error {
		return s.store.CreateUser(ctx, u)
	}); err != nil {
		s.writeStoreError(w, err, "user", "register")
		return
	}

	s.writeJSON(w, http.StatusCreated, userResponse{User: u})
}

func (s *Server) handleLoginUser(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	u, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		s.logger.Error("get user by email", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.writeJSON(w, http.StatusOK, userResponse{User: u})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	users, total, err := s.store.ListUsers(r.Context(), model.RoleUser, p)
	if err != nil {
		s.writeStoreError(w, err, "users", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(users, total, p))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "user", "get")
		return
	}

	s.writeJSON(w, http.StatusOK, userResponse{User: u})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	u, err := s.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "user", "get")
		return
	}

	u.Name = req.Name
	u.Email = req.Email
	u.PhoneNumber = req.PhoneNumber
	u.Address = req.Address
	u.UpdatedAt = s.now().UTC()
	if err := u.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.store.UpdateUser(r.Context(), u); err != nil {
		s.writeStoreError(w, err, "user", "update")
		return
	}

	s.writeJSON(w, http.StatusOK, userResponse{User: u})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err, "user", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUserOrders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetUser(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "user", "get")
		return
	}

	orders, err := s.store.ListOrdersByUser(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "orders", "list")
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"data": orders})
}
