package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
)

// populateConcurrency bounds the store lookups in flight while populating a
// page of assignments.
const populateConcurrency = 8

// deliveryPersonRequest is the JSON body for creating or replacing a courier.
type deliveryPersonRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	NIC         string `json:"nic"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	VehicleType string `json:"vehicle_type"`
	Address     string `json:"address"`
}

func (req deliveryPersonRequest) apply(p *model.DeliveryPerson) {
	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.NIC = req.NIC
	p.Email = req.Email
	p.Age = req.Age
	p.VehicleType = req.VehicleType
	p.Address = req.Address
}

// deliveryLoginRequest is the JSON body for POST /api/delivery-persons/login.
type deliveryLoginRequest struct {
	NIC   string `json:"nic"`
	Email string `json:"email"`
}

// createAssignmentRequest is the JSON body for POST /api/deliveries/assignments.
type createAssignmentRequest struct {
	OrderID          string `json:"order_id"`
	DeliveryPersonID string `json:"delivery_person_id"`
}

// assignmentStatusRequest is the JSON body for PUT /api/deliveries/assignments/{id}.
type assignmentStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleCreateDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	var req deliveryPersonRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	p := &model.DeliveryPerson{}
	req.apply(p)
	if err := p.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.createWithRetry(r.Context(), "delivery_person", func(ctx context.Context) error {
		return s.store.CreateDeliveryPerson(ctx, p)
	}); err != nil {
		s.writeStoreError(w, err, "delivery person", "create")
		return
	}

	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleLoginDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	var req deliveryLoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.NIC == "" || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "nic and email are required")
		return
	}

	p, err := s.store.FindDeliveryPerson(r.Context(), req.NIC, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.writeStoreError(w, err, "delivery person", "find")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"delivery_person": p})
}

func (s *Server) handleListDeliveryPersons(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	persons, total, err := s.store.ListDeliveryPersons(r.Context(), p)
	if err != nil {
		s.writeStoreError(w, err, "delivery persons", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(persons, total, p))
}

func (s *Server) handleGetDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetDeliveryPerson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "delivery person", "get")
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	var req deliveryPersonRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	p, err := s.store.GetDeliveryPerson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "delivery person", "get")
		return
	}

	req.apply(p)
	if err := p.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.store.UpdateDeliveryPerson(r.Context(), p); err != nil {
		s.writeStoreError(w, err, "delivery person", "update")
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteDeliveryPerson(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDeliveryPerson(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err, "delivery person", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOutForDelivery(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	orders, total, err := s.store.ListOrders(r.Context(), model.OrderStatusOutForDel, p)
	if err != nil {
		s.writeStoreError(w, err, "orders", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(orders, total, p))
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	a := &model.DeliveryAssignment{
		OrderID:          req.OrderID,
		DeliveryPersonID: req.DeliveryPersonID,
		AssignedAt:       s.now().UTC(),
		Status:           model.AssignmentAssigned,
	}
	if err := a.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.createWithRetry(r.Context(), "delivery_assignment", func(ctx context.Context) error {
		return s.store.CreateAssignment(ctx, a)
	}); err != nil {
		s.writeStoreError(w, err, "order or delivery person", "create assignment for")
		return
	}

	if err := s.populateAssignment(r.Context(), a); err != nil {
		s.writeStoreError(w, err, "delivery assignment", "populate")
		return
	}
	if a.Order != nil {
		s.publishStatus(a.Order)
	}

	s.writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)

	assignments, total, err := s.store.ListAssignments(r.Context(), p)
	if err != nil {
		s.writeStoreError(w, err, "delivery assignments", "list")
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(populateConcurrency)
	for _, a := range assignments {
		g.Go(func() error {
			return s.populateAssignment(ctx, a)
		})
	}
	if err := g.Wait(); err != nil {
		s.writeStoreError(w, err, "delivery assignments", "populate")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(assignments, total, p))
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAssignment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "delivery assignment", "get")
		return
	}

	if err := s.populateAssignment(r.Context(), a); err != nil {
		s.writeStoreError(w, err, "delivery assignment", "populate")
		return
	}

	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req assignmentStatusRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if !model.ValidAssignmentStatus(req.Status) {
		s.writeError(w, http.StatusBadRequest, "unknown assignment status")
		return
	}

	if err := s.store.UpdateAssignmentStatus(r.Context(), id, req.Status); err != nil {
		s.writeStoreError(w, err, "delivery assignment", "update")
		return
	}

	a, err := s.store.GetAssignment(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "delivery assignment", "get")
		return
	}
	if err := s.populateAssignment(r.Context(), a); err != nil {
		s.writeStoreError(w, err, "delivery assignment", "populate")
		return
	}

	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAssignment(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err, "delivery assignment", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// populateAssignment loads the assignment's order and courier concurrently.
// A reference to a deleted record is left nil.
func (s *Server) populateAssignment(ctx context.Context, a *model.DeliveryAssignment) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		o, err := s.store.GetOrder(ctx, a.OrderID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		a.Order = o
		return nil
	})
	g.Go(func() error {
		p, err := s.store.GetDeliveryPerson(ctx, a.DeliveryPersonID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		a.DeliveryPerson = p
		return nil
	})

	return g.Wait()
}
