package api

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
	"github.com/Pasindu991182/food-delivery-system/internal/tracking"
)

// orderLine is one requested line of a new order. Names and prices come from
// the catalog, never from the client.
type orderLine struct {
	FoodID   string `json:"food_id"`
	Quantity int    `json:"quantity"`
}

// placeOrderRequest is the JSON body for POST /api/orders.
type placeOrderRequest struct {
	UserID  string                `json:"user_id"`
	Items   []orderLine           `json:"items"`
	Address model.DeliveryAddress `json:"address"`
	Payment bool                  `json:"payment"`
}

// updateOrderRequest is the JSON body for PUT /api/orders/{id}.
type updateOrderRequest struct {
	Address model.DeliveryAddress `json:"address"`
	Status  string                `json:"status"`
	Payment bool                  `json:"payment"`
}

// orderStatusRequest is the JSON body for PUT /api/orders/{id}/status.
type orderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		s.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if len(req.Items) == 0 {
		s.writeError(w, http.StatusBadRequest, "items are required")
		return
	}

	if _, err := s.store.GetUser(r.Context(), req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusBadRequest, "user not found")
			return
		}
		s.writeStoreError(w, err, "user", "get")
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		f, err := s.store.GetFood(r.Context(), line.FoodID)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusBadRequest, "food "+line.FoodID+" not found")
			return
		}
		if err != nil {
			s.writeStoreError(w, err, "food", "get")
			return
		}
		items = append(items, model.OrderItem{
			FoodID:   f.ID,
			Name:     f.Name,
			Price:    math.Round(f.EffectivePrice()*100) / 100,
			Quantity: line.Quantity,
		})
	}

	o := &model.Order{
		UserID:  req.UserID,
		Items:   items,
		Address: req.Address,
		Status:  model.OrderStatusProcessing,
		Payment: req.Payment,
		Date:    s.now().UTC(),
	}
	o.Amount = o.Total()
	if err := o.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.createWithRetry(r.Context(), "order", func(ctx context.Context) error {
		return s.store.CreateOrder(ctx, o)
	}); err != nil {
		s.writeStoreError(w, err, "order", "place")
		return
	}

	s.publishStatus(o)
	s.writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r)
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidOrderStatus(status) {
		s.writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	orders, total, err := s.store.ListOrders(r.Context(), status, p)
	if err != nil {
		s.writeStoreError(w, err, "orders", "list")
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(orders, total, p))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "order", "get")
		return
	}

	s.writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	o, err := s.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err, "order", "get")
		return
	}

	previous := o.Status
	o.Address = req.Address
	o.Payment = req.Payment
	if req.Status != "" {
		o.Status = req.Status
	}
	if err := o.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.store.UpdateOrder(r.Context(), o); err != nil {
		s.writeStoreError(w, err, "order", "update")
		return
	}

	if o.Status != previous {
		s.publishStatus(o)
	}
	s.writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req orderStatusRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if !model.ValidOrderStatus(req.Status) {
		s.writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	if err := s.store.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		s.writeStoreError(w, err, "order", "update")
		return
	}

	o, err := s.store.GetOrder(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "order", "get")
		return
	}

	s.publishStatus(o)
	s.writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteOrder(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "order", "delete")
		return
	}

	s.broker.Forget(id)
	w.WriteHeader(http.StatusNoContent)
}

// publishStatus announces o's current status to its subscribers and closes
// the topic once the order is delivered. An order moved back from Delivered
// reopens its topic.
func (s *Server) publishStatus(o *model.Order) {
	if o.Status != model.OrderStatusDelivered {
		s.broker.Reopen(o.ID)
	}
	orderStatusEventsTotal.WithLabelValues(o.Status).Inc()
	s.broker.Publish(tracking.Event{
		OrderID: o.ID,
		OID:     o.OID,
		Status:  o.Status,
		At:      s.now().UTC(),
	})
	if o.Status == model.OrderStatusDelivered {
		s.broker.Close(o.ID)
	}
}
