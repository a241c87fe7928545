package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

// cartResponse is the JSON response for cart endpoints.
type cartResponse struct {
	UserID string           `json:"user_id"`
	Items  []model.CartItem `json:"items"`
}

// addCartItemRequest is the JSON body for POST /api/users/{id}/cart/items.
type addCartItemRequest struct {
	FoodID string `json:"food_id"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetUser(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "user", "get")
		return
	}

	s.writeCart(w, r, id)
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req addCartItemRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.FoodID == "" {
		s.writeError(w, http.StatusBadRequest, "food_id is required")
		return
	}

	if _, err := s.store.GetUser(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "user", "get")
		return
	}
	if _, err := s.store.GetFood(r.Context(), req.FoodID); err != nil {
		s.writeStoreError(w, err, "food", "get")
		return
	}

	if err := s.store.AddCartItem(r.Context(), id, req.FoodID); err != nil {
		s.writeStoreError(w, err, "cart item", "add")
		return
	}

	s.writeCart(w, r, id)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.RemoveCartItem(r.Context(), id, chi.URLParam(r, "foodID")); err != nil {
		s.writeStoreError(w, err, "cart item", "remove")
		return
	}

	s.writeCart(w, r, id)
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, userID string) {
	items, err := s.store.GetCart(r.Context(), userID)
	if err != nil {
		s.writeStoreError(w, err, "cart", "get")
		return
	}
	if items == nil {
		items = []model.CartItem{}
	}

	s.writeJSON(w, http.StatusOK, cartResponse{UserID: userID, Items: items})
}
