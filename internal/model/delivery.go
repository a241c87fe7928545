package model

import (
	"time"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

// Vehicle types.
const (
	VehicleBike  = "bike"
	VehicleWheel = "wheel"
)

// Delivery assignment status constants.
const (
	AssignmentAssigned  = "Assigned"
	AssignmentCompleted = "Completed"
)

// DeliveryPerson is a courier who can be assigned orders.
type DeliveryPerson struct {
	ID          string `json:"id"`
	DID         string `json:"did"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	NIC         string `json:"nic"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	VehicleType string `json:"vehicle_type"`
	Address     string `json:"address"`
}

func (p *DeliveryPerson) SeqKind() seqid.Kind { return seqid.DeliveryPerson }
func (p *DeliveryPerson) IsNew() bool         { return p.ID == "" }
func (p *DeliveryPerson) SetSeqID(id string)  { p.DID = id }
func (p *DeliveryPerson) SetID(id string)     { p.ID = id }

// Validate checks identity fields, a minimum age of 18 and the vehicle type.
func (p *DeliveryPerson) Validate() error {
	for _, fv := range []struct{ field, value string }{
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
		{"nic", p.NIC},
		{"address", p.Address},
	} {
		if err := required(fv.field, fv.value); err != nil {
			return err
		}
	}
	if !ValidEmail(p.Email) {
		return invalidf("please enter a valid email")
	}
	if p.Age < 18 {
		return invalidf("age must be at least 18")
	}
	if p.VehicleType != VehicleBike && p.VehicleType != VehicleWheel {
		return invalidf("vehicle_type must be %q or %q", VehicleBike, VehicleWheel)
	}
	return nil
}

// DeliveryAssignment links an order to the courier delivering it.
// Order and DeliveryPerson are populated on reads only.
type DeliveryAssignment struct {
	ID               string          `json:"id"`
	DID              string          `json:"did"`
	OrderID          string          `json:"order_id"`
	DeliveryPersonID string          `json:"delivery_person_id"`
	AssignedAt       time.Time       `json:"assigned_at"`
	Status           string          `json:"status"`
	Order            *Order          `json:"order,omitempty"`
	DeliveryPerson   *DeliveryPerson `json:"delivery_person,omitempty"`
}

func (a *DeliveryAssignment) SeqKind() seqid.Kind { return seqid.DeliveryAssignment }
func (a *DeliveryAssignment) IsNew() bool         { return a.ID == "" }
func (a *DeliveryAssignment) SetSeqID(id string)  { a.DID = id }
func (a *DeliveryAssignment) SetID(id string)     { a.ID = id }

// ValidAssignmentStatus reports whether s is a known assignment status.
func ValidAssignmentStatus(s string) bool {
	return s == AssignmentAssigned || s == AssignmentCompleted
}

// Validate checks both references are set and the status is known.
func (a *DeliveryAssignment) Validate() error {
	if err := required("order_id", a.OrderID); err != nil {
		return err
	}
	if err := required("delivery_person_id", a.DeliveryPersonID); err != nil {
		return err
	}
	if !ValidAssignmentStatus(a.Status) {
		return invalidf("status %q is not supported", a.Status)
	}
	return nil
}
