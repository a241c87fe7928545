package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

// foodRequest is the JSON body for creating or replacing a food item.
type foodRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	Image        string             `json:"image"`
	Category     string             `json:"category"`
	Ingredients  []string           `json:"ingredients"`
	DietaryInfo  model.DietaryInfo  `json:"dietary_info"`
	SpecialOffer model.SpecialOffer `json:"special_offer"`
}

func (req foodRequest) apply(f *model.Food) {
	f.Name = req.Name
	f.Description = req.Description
	f.Price = req.Price
	f.Image = req.Image
	f.Category = req.Category
	f.Ingredients = req.Ingredients
	f.DietaryInfo = req.DietaryInfo
	f.SpecialOffer = req.SpecialOffer
}

func (s *Server) handleCreateFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	now := s.now().UTC()
	f := &model.Food{CreatedAt: now, UpdatedAt: now}
	req.apply(f)
	if err := f.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.createWithRetry(r.Context(), "food", func(ctx context.Context) error {
		return s.store.CreateFood(ctx, f)
	}); err != nil {
		s.writeStoreError(w, err, "food", "create")
		return
	}

	s.writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	foods, total, err := s.store.ListFoods(r.Context(), r.URL.Query().Get("category"), p)
	if err != nil {
		s.writeStoreError(w, err, "foods", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(foods, total, p))
}

func (s *Server) handleGetFood(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.GetFood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "food", "get")
		return
	}

	s.writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleUpdateFood(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	f, err := s.store.GetFood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "food", "get")
		return
	}

	req.apply(f)
	f.UpdatedAt = s.now().UTC()
	if err := f.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.store.UpdateFood(r.Context(), f); err != nil {
		s.writeStoreError(w, err, "food", "update")
		return
	}

	s.writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFood(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err, "food", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFoodReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.store.GetFood(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "food", "get")
		return
	}

	reviews, err := s.store.ListReviewsByFood(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "reviews", "list")
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"data": reviews})
}
