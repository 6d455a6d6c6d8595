package model

import (
	"fmt"
	"time"
)

// User represents an account that can post items and submit claims.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	DeletedAt    *time.Time `json:"-"`
}

// Identity is the authenticated caller of an operation, carried as an
// explicit value rather than read from ambient session state.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Phone  string
}

// Claimant converts the identity into the snapshot stored with a claim.
func (id Identity) Claimant() Claimant {
	uid := id.UserID
	return Claimant{
		UserID: &uid,
		Name:   id.Name,
		Email:  id.Email,
		Phone:  id.Phone,
	}
}

// ValidatePassword enforces the minimum password length for new accounts.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
