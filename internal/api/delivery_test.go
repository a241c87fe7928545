package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

func testCourierRequest(n int) deliveryPersonRequest {
	return deliveryPersonRequest{
		FirstName:   "Kamal",
		LastName:    "Perera",
		NIC:         fmt.Sprintf("20001234%04d", n),
		Email:       fmt.Sprintf("courier%d@example.com", n),
		Age:         27,
		VehicleType: model.VehicleBike,
		Address:     "Kandy",
	}
}

func createTestCourier(t *testing.T, ts *httptest.Server, n int) *model.DeliveryPerson {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/delivery-persons", testCourierRequest(n))
	expectStatus(t, resp, http.StatusCreated)
	return decodeAs[*model.DeliveryPerson](t, resp)
}

func TestCreateDeliveryPerson(t *testing.T) {
	srv := newTestServerAt(t, testDay)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	p := createTestCourier(t, ts, 1)
	if p.DID != "20250301001" {
		t.Errorf("DID = %q, want 20250301001", p.DID)
	}

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/delivery-persons", testCourierRequest(1))
	expectStatus(t, resp, http.StatusConflict)

	underage := testCourierRequest(2)
	underage.Age = 17
	expectStatus(t, doJSON(t, http.MethodPost, ts.URL+"/api/delivery-persons", underage), http.StatusBadRequest)

	car := testCourierRequest(3)
	car.VehicleType = "car"
	expectStatus(t, doJSON(t, http.MethodPost, ts.URL+"/api/delivery-persons", car), http.StatusBadRequest)
}

func TestLoginDeliveryPerson(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	p := createTestCourier(t, ts, 1)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/delivery-persons/login", deliveryLoginRequest{NIC: p.NIC, Email: p.Email})
	expectStatus(t, resp, http.StatusOK)
	body := decodeAs[map[string]*model.DeliveryPerson](t, resp)
	if body["delivery_person"].ID != p.ID {
		t.Errorf("logged in as %+v", body["delivery_person"])
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/delivery-persons/login", deliveryLoginRequest{NIC: p.NIC, Email: "other@example.com"})
	expectStatus(t, resp, http.StatusUnauthorized)
}

func TestUpdateAndDeleteDeliveryPerson(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	p := createTestCourier(t, ts, 1)

	req := testCourierRequest(1)
	req.VehicleType = model.VehicleWheel
	resp := doJSON(t, http.MethodPut, ts.URL+"/api/delivery-persons/"+p.ID, req)
	expectStatus(t, resp, http.StatusOK)
	got := decodeAs[*model.DeliveryPerson](t, resp)
	if got.VehicleType != model.VehicleWheel || got.DID != p.DID {
		t.Errorf("person = %+v", got)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/delivery-persons", nil)
	if list := decodeAs[listResponse[*model.DeliveryPerson]](t, resp); list.Total != 1 {
		t.Errorf("total = %d, want 1", list.Total)
	}

	expectStatus(t, doJSON(t, http.MethodDelete, ts.URL+"/api/delivery-persons/"+p.ID, nil), http.StatusNoContent)
	expectStatus(t, doJSON(t, http.MethodGet, ts.URL+"/api/delivery-persons/"+p.ID, nil), http.StatusNotFound)
}

func TestAssignmentFlow(t *testing.T) {
	srv := newTestServerAt(t, testDay)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	u := registerTestUser(t, ts, "buyer@example.com")
	f := createTestFood(t, ts, "Roll", 3)
	o := placeTestOrder(t, ts, u.ID, f.ID, 1)
	p := createTestCourier(t, ts, 1)

	expectStatus(t, doJSON(t, http.MethodPut, ts.URL+"/api/orders/"+o.ID+"/status",
		orderStatusRequest{Status: model.OrderStatusOutForDel}), http.StatusOK)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/deliveries/out-for-delivery", nil)
	expectStatus(t, resp, http.StatusOK)
	if list := decodeAs[listResponse[*model.Order]](t, resp); list.Total != 1 || list.Data[0].ID != o.ID {
		t.Fatalf("out for delivery = %+v", list)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/deliveries/assignments", createAssignmentRequest{OrderID: o.ID, DeliveryPersonID: p.ID})
	expectStatus(t, resp, http.StatusCreated)
	a := decodeAs[*model.DeliveryAssignment](t, resp)

	// Assignments and couriers count separately even though both use "did".
	if a.DID != "20250301001" {
		t.Errorf("assignment DID = %q, want 20250301001", a.DID)
	}
	if a.Status != model.AssignmentAssigned {
		t.Errorf("Status = %q, want %q", a.Status, model.AssignmentAssigned)
	}
	if a.Order == nil || a.Order.Status != model.OrderStatusAssigned {
		t.Errorf("populated order = %+v", a.Order)
	}
	if a.DeliveryPerson == nil || a.DeliveryPerson.ID != p.ID {
		t.Errorf("populated person = %+v", a.DeliveryPerson)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/deliveries/out-for-delivery", nil)
	if list := decodeAs[listResponse[*model.Order]](t, resp); list.Total != 0 {
		t.Errorf("out for delivery after assign = %d, want 0", list.Total)
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/deliveries/assignments/"+a.ID, assignmentStatusRequest{Status: model.AssignmentCompleted})
	expectStatus(t, resp, http.StatusOK)
	updated := decodeAs[*model.DeliveryAssignment](t, resp)
	if updated.Status != model.AssignmentCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, model.AssignmentCompleted)
	}
	if updated.Order == nil || updated.Order.ID != o.ID {
		t.Errorf("updated assignment order = %+v", updated.Order)
	}
	if updated.DeliveryPerson == nil || updated.DeliveryPerson.ID != p.ID {
		t.Errorf("updated assignment person = %+v", updated.DeliveryPerson)
	}

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/deliveries/assignments/"+a.ID, assignmentStatusRequest{Status: "Lost"})
	expectStatus(t, resp, http.StatusBadRequest)

	expectStatus(t, doJSON(t, http.MethodDelete, ts.URL+"/api/deliveries/assignments/"+a.ID, nil), http.StatusNoContent)
	expectStatus(t, doJSON(t, http.MethodGet, ts.URL+"/api/deliveries/assignments/"+a.ID, nil), http.StatusNotFound)
}

func TestCreateAssignmentUnknownReferences(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	u := registerTestUser(t, ts, "buyer@example.com")
	f := createTestFood(t, ts, "Roll", 3)
	o := placeTestOrder(t, ts, u.ID, f.ID, 1)
	p := createTestCourier(t, ts, 1)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/deliveries/assignments", createAssignmentRequest{OrderID: "missing", DeliveryPersonID: p.ID})
	expectStatus(t, resp, http.StatusNotFound)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/deliveries/assignments", createAssignmentRequest{OrderID: o.ID, DeliveryPersonID: "missing"})
	expectStatus(t, resp, http.StatusNotFound)

	// The failed assignment must not have moved the order.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/orders/"+o.ID, nil)
	if got := decodeAs[*model.Order](t, resp); got.Status != model.OrderStatusProcessing {
		t.Errorf("order status = %q, want %q", got.Status, model.OrderStatusProcessing)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/deliveries/assignments", createAssignmentRequest{OrderID: o.ID})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestListAssignmentsPopulates(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	u := registerTestUser(t, ts, "buyer@example.com")
	f := createTestFood(t, ts, "Roll", 3)

	const n = 5
	for i := range n {
		o := placeTestOrder(t, ts, u.ID, f.ID, 1)
		p := createTestCourier(t, ts, i)
		expectStatus(t, doJSON(t, http.MethodPost, ts.URL+"/api/deliveries/assignments",
			createAssignmentRequest{OrderID: o.ID, DeliveryPersonID: p.ID}), http.StatusCreated)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/deliveries/assignments", nil)
	expectStatus(t, resp, http.StatusOK)
	list := decodeAs[listResponse[*model.DeliveryAssignment]](t, resp)

	if list.Total != n || len(list.Data) != n {
		t.Fatalf("total = %d, len = %d, want %d", list.Total, len(list.Data), n)
	}
	for _, a := range list.Data {
		if a.Order == nil || a.Order.ID != a.OrderID {
			t.Errorf("assignment %s: order not populated", a.ID)
		}
		if a.DeliveryPerson == nil || a.DeliveryPerson.ID != a.DeliveryPersonID {
			t.Errorf("assignment %s: person not populated", a.ID)
		}
	}
}

func TestGetAssignmentWithDeletedCourier(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	u := registerTestUser(t, ts, "buyer@example.com")
	f := createTestFood(t, ts, "Roll", 3)
	o := placeTestOrder(t, ts, u.ID, f.ID, 1)
	p := createTestCourier(t, ts, 1)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/deliveries/assignments", createAssignmentRequest{OrderID: o.ID, DeliveryPersonID: p.ID})
	expectStatus(t, resp, http.StatusCreated)
	a := decodeAs[*model.DeliveryAssignment](t, resp)

	expectStatus(t, doJSON(t, http.MethodDelete, ts.URL+"/api/delivery-persons/"+p.ID, nil), http.StatusNoContent)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/deliveries/assignments/"+a.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	got := decodeAs[*model.DeliveryAssignment](t, resp)
	if got.DeliveryPerson != nil {
		t.Errorf("DeliveryPerson = %+v, want nil", got.DeliveryPerson)
	}
	if got.Order == nil {
		t.Error("Order not populated")
	}
}
