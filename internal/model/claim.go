package model

import "time"

// Claimant is the identity snapshot recorded with a claim. UserID is nil
// for claimants without an account (lost-item reports taken over the
// counter); claims submitted through the API always carry one.
type Claimant struct {
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
}

// Claim is a request asserting ownership of an item, pending the item
// poster's decision. A claim is decided at most once and is terminal
// afterwards.
type Claim struct {
	ID        int64      `json:"id"`
	ItemID    int64      `json:"itemId"`
	ClaimedBy Claimant   `json:"claimedBy"`
	Answer    string     `json:"answer"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
}

// Claim statuses. The capitalized literals are the wire contract.
const (
	ClaimStatusPending  = "Pending"
	ClaimStatusApproved = "Approved"
	ClaimStatusRejected = "Rejected"
)

// Moderation actions accepted by PATCH /items/claims/{id}.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Decided reports whether the claim has reached a terminal status.
func (c *Claim) Decided() bool {
	return c.Status == ClaimStatusApproved || c.Status == ClaimStatusRejected
}
