// Package claims implements the claim workflow: submission against a found
// item, listing by the item's poster, and the one-shot approve/reject
// decision. All operations take the caller's identity as an explicit value.
package claims

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// opTimeout bounds every store operation so a wedged database surfaces as
// a failure instead of a hung request.
const opTimeout = 10 * time.Second

// Service carries out claim operations against the backing store.
type Service struct {
	DB *sql.DB
}

// Submit creates a new pending claim by claimant against an item. The
// claimant's identity snapshot (name, email, phone, user id) is recorded
// with the claim. Multiple claims per item, including repeated claims by
// the same claimant, are allowed.
func (s *Service) Submit(ctx context.Context, itemID int64, claimant model.Identity, answer string) (*model.Claim, error) {
	if claimant.UserID == 0 {
		return nil, ErrUnauthenticated
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	item, err := store.GetItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}
	if item == nil || item.DeletedAt != nil {
		return nil, ErrItemNotFound
	}

	claim, err := store.CreateClaim(ctx, s.DB, itemID, claimant.Claimant(), answer)
	if err != nil {
		return nil, fmt.Errorf("submitting claim: %w", err)
	}
	return claim, nil
}

// List returns all claims for an item, in store order. Only the item's
// poster may list them.
func (s *Service) List(ctx context.Context, itemID int64, requester model.Identity) ([]model.Claim, error) {
	if requester.UserID == 0 {
		return nil, ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	item, err := store.GetItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}
	if item == nil || item.DeletedAt != nil {
		return nil, ErrItemNotFound
	}
	if item.FoundBy != requester.UserID {
		return nil, ErrNotOwner
	}

	list, err := store.ListClaimsForItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	if list == nil {
		// Zero claims is a real answer, distinct from a failed load.
		list = []model.Claim{}
	}
	return list, nil
}

// Decide applies a moderation decision (approve or reject) to a pending
// claim. Only the poster of the claimed item may decide, and only once: a
// terminal claim rejects further decisions with ErrAlreadyDecided.
// Approval marks the item as claimed; sibling claims are not touched.
func (s *Service) Decide(ctx context.Context, claimID int64, decision string, requester model.Identity) (*model.Claim, error) {
	if requester.UserID == 0 {
		return nil, ErrUnauthenticated
	}

	var status string
	switch decision {
	case model.DecisionApprove:
		status = model.ClaimStatusApproved
	case model.DecisionReject:
		status = model.ClaimStatusRejected
	default:
		return nil, ErrInvalidDecision
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	claim, err := store.GetClaim(ctx, s.DB, claimID)
	if err != nil {
		return nil, fmt.Errorf("looking up claim: %w", err)
	}
	if claim == nil {
		return nil, ErrClaimNotFound
	}

	item, err := store.GetItem(ctx, s.DB, claim.ItemID)
	if err != nil {
		return nil, fmt.Errorf("looking up claimed item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.FoundBy != requester.UserID {
		return nil, ErrNotOwner
	}

	updated, err := store.DecideClaim(ctx, s.DB, claimID, status)
	if errors.Is(err, store.ErrClaimDecided) {
		return nil, ErrAlreadyDecided
	}
	if err != nil {
		return nil, fmt.Errorf("deciding claim: %w", err)
	}
	if updated == nil {
		return nil, ErrClaimNotFound
	}
	return updated, nil
}
