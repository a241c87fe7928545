package model

import (
	"time"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

// Contact message status constants.
const (
	MessagePending  = "pending"
	MessageResolved = "resolved"
)

// ContactMessage is a message sent through the storefront contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	CID       string    `json:"cid"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ContactMessage) SeqKind() seqid.Kind { return seqid.ContactMessage }
func (m *ContactMessage) IsNew() bool         { return m.ID == "" }
func (m *ContactMessage) SetSeqID(id string)  { m.CID = id }
func (m *ContactMessage) SetID(id string)     { m.ID = id }

// Validate checks the message body, sender and status.
func (m *ContactMessage) Validate() error {
	if err := required("message", m.Message); err != nil {
		return err
	}
	if err := required("user_id", m.UserID); err != nil {
		return err
	}
	if !ValidEmail(m.Email) {
		return invalidf("please enter a valid email address")
	}
	if m.Status != MessagePending && m.Status != MessageResolved {
		return invalidf("status %q is not supported", m.Status)
	}
	return nil
}
