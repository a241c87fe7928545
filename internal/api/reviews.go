package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
)

// createReviewRequest is the JSON body for POST /api/reviews.
type createReviewRequest struct {
	ReviewedBy string `json:"reviewed_by"`
	Review     string `json:"review"`
	Rate       string `json:"rate"`
	OrderID    string `json:"order_id"`
}

// updateReviewRequest is the JSON body for PUT /api/reviews/{id}.
type updateReviewRequest struct {
	Review string `json:"review"`
	Rate   string `json:"rate"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	now := s.now().UTC()
	rv := &model.Review{
		ReviewedBy: req.ReviewedBy,
		Review:     req.Review,
		Rate:       req.Rate,
		OrderID:    req.OrderID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := rv.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	o, err := s.store.GetOrder(r.Context(), rv.OrderID)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusBadRequest, "order not found")
		return
	}
	if err != nil {
		s.writeStoreError(w, err, "order", "get")
		return
	}
	if o.UserID != rv.ReviewedBy {
		s.writeError(w, http.StatusBadRequest, "order was not placed by the reviewer")
		return
	}

	if err := s.createWithRetry(r.Context(), "review", func(ctx context.Context) error {
		return s.store.CreateReview(ctx, rv)
	}); err != nil {
		s.writeStoreError(w, err, "review", "create")
		return
	}

	created, err := s.store.GetReview(r.Context(), rv.ID)
	if err != nil {
		s.writeStoreError(w, err, "review", "get")
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	reviews, total, err := s.store.ListReviews(r.Context(), p)
	if err != nil {
		s.writeStoreError(w, err, "reviews", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(reviews, total, p))
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	rv, err := s.store.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "review", "get")
		return
	}

	s.writeJSON(w, http.StatusOK, rv)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req updateReviewRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	rv, err := s.store.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "review", "get")
		return
	}

	rv.Review = req.Review
	rv.Rate = req.Rate
	rv.UpdatedAt = s.now().UTC()
	if err := rv.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.store.UpdateReview(r.Context(), rv); err != nil {
		s.writeStoreError(w, err, "review", "update")
		return
	}

	s.writeJSON(w, http.StatusOK, rv)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err, "review", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
