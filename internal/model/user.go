package model

import (
	"time"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a storefront customer or an admin account.
type User struct {
	ID           string    `json:"id"`
	UID          string    `json:"uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) SeqKind() seqid.Kind { return seqid.User }
func (u *User) IsNew() bool         { return u.ID == "" }
func (u *User) SetSeqID(id string)  { u.UID = id }
func (u *User) SetID(id string)     { u.ID = id }

// Validate checks the profile fields shared by registration and update.
func (u *User) Validate() error {
	if err := required("name", u.Name); err != nil {
		return err
	}
	if !ValidEmail(u.Email) {
		return invalidf("please enter a valid email")
	}
	if !ValidPhone(u.PhoneNumber) {
		return invalidf("please enter a valid phone number")
	}
	if err := required("address", u.Address); err != nil {
		return err
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return invalidf("role %q is not supported", u.Role)
	}
	return nil
}
