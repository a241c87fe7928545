package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

func testFoodRequest(name string, price float64) foodRequest {
	return foodRequest{
		Name:        name,
		Description: "House special",
		Price:       price,
		Image:       "food.png",
		Category:    "Rolls",
		Ingredients: []string{"flour"},
	}
}

func createTestFood(t *testing.T, ts *httptest.Server, name string, price float64) *model.Food {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/foods", testFoodRequest(name, price))
	expectStatus(t, resp, http.StatusCreated)
	return decodeAs[*model.Food](t, resp)
}

func TestCreateFoodsSequentialIDs(t *testing.T) {
	srv := newTestServerAt(t, testDay)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for i, want := range []string{"20250301001", "20250301002", "20250301003"} {
		f := createTestFood(t, ts, fmt.Sprintf("item %d", i), 4.5)
		if f.FID != want {
			t.Errorf("FID[%d] = %q, want %q", i, f.FID, want)
		}
	}
}

func TestCreateFoodValidation(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	tests := []struct {
		name   string
		mutate func(*foodRequest)
	}{
		{"zero price", func(r *foodRequest) { r.Price = 0 }},
		{"no ingredients", func(r *foodRequest) { r.Ingredients = nil }},
		{"missing category", func(r *foodRequest) { r.Category = "" }},
		{"discount over 100", func(r *foodRequest) {
			d := 150.0
			r.SpecialOffer = model.SpecialOffer{IsOnOffer: true, DiscountPercentage: &d}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testFoodRequest("Kottu", 5)
			tt.mutate(&req)
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/foods", req)
			expectStatus(t, resp, http.StatusBadRequest)
		})
	}
}

func TestListFoodsByCategory(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	createTestFood(t, ts, "Chicken Roll", 3)
	salad := testFoodRequest("Greek Salad", 6)
	salad.Category = "Salad"
	expectStatus(t, doJSON(t, http.MethodPost, ts.URL+"/api/foods", salad), http.StatusCreated)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods?category=Salad", nil)
	expectStatus(t, resp, http.StatusOK)
	list := decodeAs[listResponse[*model.Food]](t, resp)
	if list.Total != 1 || list.Data[0].Name != "Greek Salad" {
		t.Errorf("list = %+v", list)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/foods", nil)
	list = decodeAs[listResponse[*model.Food]](t, resp)
	if list.Total != 2 {
		t.Errorf("total = %d, want 2", list.Total)
	}
	if list.Limit != defaultListLimit {
		t.Errorf("limit = %d, want %d", list.Limit, defaultListLimit)
	}
}

func TestListFoodsEmptyReturnsArray(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods", nil)
	expectStatus(t, resp, http.StatusOK)

	body := decodeAs[map[string]any](t, resp)
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("data = %v, want empty array", body["data"])
	}
}

func TestUpdateFoodKeepsFID(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	f := createTestFood(t, ts, "Kottu", 5)

	req := testFoodRequest("Cheese Kottu", 6.5)
	resp := doJSON(t, http.MethodPut, ts.URL+"/api/foods/"+f.ID, req)
	expectStatus(t, resp, http.StatusOK)

	got := decodeAs[*model.Food](t, resp)
	if got.FID != f.FID {
		t.Errorf("FID = %q, want unchanged %q", got.FID, f.FID)
	}
	if got.Name != "Cheese Kottu" || got.Price != 6.5 {
		t.Errorf("food = %+v", got)
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/foods/missing", req)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestDeleteFood(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	f := createTestFood(t, ts, "Kottu", 5)

	expectStatus(t, doJSON(t, http.MethodDelete, ts.URL+"/api/foods/"+f.ID, nil), http.StatusNoContent)
	expectStatus(t, doJSON(t, http.MethodGet, ts.URL+"/api/foods/"+f.ID, nil), http.StatusNotFound)
}

func TestListFoodReviews(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	u := registerTestUser(t, ts, "r@example.com")
	roll := createTestFood(t, ts, "Roll", 3)
	salad := createTestFood(t, ts, "Salad", 4)
	rollOrder := placeTestOrder(t, ts, u.ID, roll.ID, 1)
	placeTestOrder(t, ts, u.ID, salad.ID, 1)

	expectStatus(t, doJSON(t, http.MethodPost, ts.URL+"/api/reviews", createReviewRequest{
		ReviewedBy: u.ID, Review: "Crispy", Rate: "😄", OrderID: rollOrder.ID,
	}), http.StatusCreated)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods/"+roll.ID+"/reviews", nil)
	expectStatus(t, resp, http.StatusOK)
	if body := decodeAs[map[string][]*model.Review](t, resp); len(body["data"]) != 1 {
		t.Errorf("roll reviews = %d, want 1", len(body["data"]))
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/foods/"+salad.ID+"/reviews", nil)
	if body := decodeAs[map[string][]*model.Review](t, resp); len(body["data"]) != 0 {
		t.Errorf("salad reviews = %d, want 0", len(body["data"]))
	}
}
