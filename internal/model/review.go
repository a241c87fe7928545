package model

import (
	"time"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

// Rates are the accepted review ratings, worst to best.
var Rates = []string{"😞", "😐", "🙂", "😊", "😄"}

// ValidRate reports whether s is one of Rates.
func ValidRate(s string) bool {
	for _, r := range Rates {
		if r == s {
			return true
		}
	}
	return false
}

// Review is a customer's feedback on an order. ReviewerName and OrderOID are
// populated on reads only.
type Review struct {
	ID           string    `json:"id"`
	RID          string    `json:"rid"`
	ReviewedBy   string    `json:"reviewed_by"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Review       string    `json:"review"`
	Rate         string    `json:"rate"`
	OrderID      string    `json:"order_id"`
	OrderOID     string    `json:"order_oid,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *Review) SeqKind() seqid.Kind { return seqid.Review }
func (r *Review) IsNew() bool         { return r.ID == "" }
func (r *Review) SetSeqID(id string)  { r.RID = id }
func (r *Review) SetID(id string)     { r.ID = id }

// Validate checks the reviewer, order and text are set and the rate is one of Rates.
func (r *Review) Validate() error {
	if err := required("reviewed_by", r.ReviewedBy); err != nil {
		return err
	}
	if err := required("order_id", r.OrderID); err != nil {
		return err
	}
	if err := required("review", r.Review); err != nil {
		return err
	}
	if !ValidRate(r.Rate) {
		return invalidf("rate %q is not supported", r.Rate)
	}
	return nil
}
