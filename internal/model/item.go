package model

import "time"

// Item represents a found-object record posted by a user. It stays visible
// in the public feed until the poster approves a claim against it.
type Item struct {
	ID           int64      `json:"id"`
	Name         string     `json:"itemName"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Place        string     `json:"place"`
	FoundAt      time.Time  `json:"datetime"`
	Phone        string     `json:"phone,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	HintQuestion string     `json:"hintQuestion"`
	HintAnswer   string     `json:"-"`
	PhotoURL     string     `json:"photoUrl,omitempty"`
	PhotoMime    string     `json:"-"`
	Status       string     `json:"status"`
	FoundBy      int64      `json:"foundBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`

	// Joined fields (not always populated).
	PosterName  string `json:"name,omitempty"`
	PosterEmail string `json:"email,omitempty"`
}

// Item statuses.
const (
	ItemStatusActive  = "active"
	ItemStatusClaimed = "claimed"
)
