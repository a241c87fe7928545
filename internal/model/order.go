package model

import (
	"math"
	"time"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

// Order status constants.
const (
	OrderStatusProcessing = "Food Processing"
	OrderStatusOutForDel  = "Out for Delivery"
	OrderStatusAssigned   = "Assigned for Delivery"
	OrderStatusDelivered  = "Delivered"
)

// DeliveryFee is added to every order's item subtotal.
const DeliveryFee = 2.0

var orderStatuses = map[string]bool{
	OrderStatusProcessing: true,
	OrderStatusOutForDel:  true,
	OrderStatusAssigned:   true,
	OrderStatusDelivered:  true,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// OrderItem is a priced line of an order, captured at placement time.
type OrderItem struct {
	FoodID   string  `json:"food_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// DeliveryAddress is where an order is delivered.
type DeliveryAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone"`
}

// Order is a placed customer order.
type Order struct {
	ID      string          `json:"id"`
	OID     string          `json:"oid"`
	UserID  string          `json:"user_id"`
	Items   []OrderItem     `json:"items"`
	Amount  float64         `json:"amount"`
	Address DeliveryAddress `json:"address"`
	Status  string          `json:"status"`
	Payment bool            `json:"payment"`
	Date    time.Time       `json:"date"`
}

func (o *Order) SeqKind() seqid.Kind { return seqid.Order }
func (o *Order) IsNew() bool         { return o.ID == "" }
func (o *Order) SetSeqID(id string)  { o.OID = id }
func (o *Order) SetID(id string)     { o.ID = id }

// Validate checks the order is deliverable and its status is known.
func (o *Order) Validate() error {
	if err := required("user_id", o.UserID); err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return invalidf("items are required")
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			return invalidf("quantity for %s must be at least 1", it.FoodID)
		}
	}
	if err := required("address.first_name", o.Address.FirstName); err != nil {
		return err
	}
	if err := required("address.street", o.Address.Street); err != nil {
		return err
	}
	if err := required("address.phone", o.Address.Phone); err != nil {
		return err
	}
	if !ValidOrderStatus(o.Status) {
		return invalidf("status %q is not supported", o.Status)
	}
	return nil
}

// Total returns the item subtotal plus DeliveryFee, rounded to cents.
func (o *Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return math.Round((sum+DeliveryFee)*100) / 100
}

// ContainsFood reports whether any line of the order is for foodID.
func (o *Order) ContainsFood(foodID string) bool {
	for _, it := range o.Items {
		if it.FoodID == foodID {
			return true
		}
	}
	return false
}
