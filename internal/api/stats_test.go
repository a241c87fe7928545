package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

func TestGetStatsEmpty(t *testing.T) {
	srv := newTestServerAt(t, testDay)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/stats", nil)
	expectStatus(t, resp, http.StatusOK)

	stats := decodeAs[statsResponse](t, resp)
	if stats.Stats == nil || stats.Orders != 0 || stats.Revenue != 0 {
		t.Errorf("stats = %+v", stats.Stats)
	}
	if stats.Day != "20250301" {
		t.Errorf("day = %q, want 20250301", stats.Day)
	}
	if len(stats.LastIssued) != 0 {
		t.Errorf("last_issued = %v, want empty", stats.LastIssued)
	}
}

func TestGetStatsPopulated(t *testing.T) {
	srv := newTestServerAt(t, testDay)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	u := registerTestUser(t, ts, "buyer@example.com")
	f := createTestFood(t, ts, "Roll", 3)
	createTestFood(t, ts, "Salad", 4)
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/orders", placeOrderRequest{
		UserID: u.ID, Items: []orderLine{{FoodID: f.ID, Quantity: 2}}, Address: testAddress, Payment: true,
	})
	expectStatus(t, resp, http.StatusCreated)
	placeTestOrder(t, ts, u.ID, f.ID, 1)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/stats", nil)
	expectStatus(t, resp, http.StatusOK)
	stats := decodeAs[statsResponse](t, resp)

	if stats.Users != 1 || stats.Foods != 2 || stats.Orders != 2 {
		t.Errorf("stats = %+v", stats.Stats)
	}
	if stats.Revenue != 8 {
		t.Errorf("revenue = %v, want 8", stats.Revenue)
	}
	if stats.OrdersByStatus[model.OrderStatusProcessing] != 2 {
		t.Errorf("orders_by_status = %v", stats.OrdersByStatus)
	}

	want := map[string]string{"user": "20250301001", "food": "20250301002", "order": "20250301002"}
	for kind, id := range want {
		if stats.LastIssued[kind] != id {
			t.Errorf("last_issued[%s] = %q, want %q", kind, stats.LastIssued[kind], id)
		}
	}
	if _, ok := stats.LastIssued["review"]; ok {
		t.Error("last_issued has review with none created")
	}
}
