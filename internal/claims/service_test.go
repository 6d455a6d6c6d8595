package claims

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

func setup(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	database := db.NewTestDB(t)
	return &Service{DB: database}, database
}

func postItem(t *testing.T, database *sql.DB, name, email string) (*model.Item, model.Identity) {
	t.Helper()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, database, name, email, "hash", "", "")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	item, err := store.CreateItem(ctx, database, &model.Item{
		Name:         "Blue Backpack",
		Category:     "Accessories",
		Description:  "navy, two pockets",
		Place:        "Library",
		FoundAt:      time.Now(),
		HintQuestion: "what color is the zipper?",
		HintAnswer:   "red",
		FoundBy:      user.ID,
	}, []byte("photo"), "image/jpeg")
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}

	return item, model.Identity{UserID: user.ID, Name: name, Email: email}
}

func claimantIdentity(t *testing.T, database *sql.DB) model.Identity {
	t.Helper()
	user, err := store.CreateUser(context.Background(), database, "Bo", "bo@example.com", "hash", "", "")
	if err != nil {
		t.Fatalf("creating claimant: %v", err)
	}
	return model.Identity{UserID: user.ID, Name: "Bo", Email: "bo@example.com", Phone: "0123456789"}
}

func TestSubmitClaim(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, _ := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)

	claim, err := svc.Submit(ctx, item.ID, claimant, "it has a red zipper")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if claim.ID == 0 {
		t.Error("expected server-assigned claim id")
	}
	if claim.Status != model.ClaimStatusPending {
		t.Errorf("expected 'Pending', got %q", claim.Status)
	}
	if claim.Answer != "it has a red zipper" {
		t.Errorf("expected answer preserved, got %q", claim.Answer)
	}
	if claim.ClaimedBy.Email != "bo@example.com" {
		t.Errorf("expected claimant snapshot, got %+v", claim.ClaimedBy)
	}
}

func TestSubmitRequiresIdentity(t *testing.T) {
	svc, database := setup(t)

	item, _ := postItem(t, database, "Ana", "ana@example.com")

	_, err := svc.Submit(context.Background(), item.ID, model.Identity{}, "an answer")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSubmitRejectsBlankAnswer(t *testing.T) {
	svc, database := setup(t)

	item, _ := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)

	for _, answer := range []string{"", "   ", "\t\n"} {
		_, err := svc.Submit(context.Background(), item.ID, claimant, answer)
		if !errors.Is(err, ErrEmptyAnswer) {
			t.Errorf("answer %q: expected ErrEmptyAnswer, got %v", answer, err)
		}
	}

	// Validation happens before any write: no claims stored.
	list, _ := store.ListClaimsForItem(context.Background(), database, item.ID)
	if len(list) != 0 {
		t.Errorf("expected no claims after rejected submissions, got %d", len(list))
	}
}

func TestSubmitMissingItem(t *testing.T) {
	svc, database := setup(t)
	claimant := claimantIdentity(t, database)

	_, err := svc.Submit(context.Background(), 42, claimant, "an answer")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSubmitAllowsDuplicates(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, owner := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)

	// No dedup constraint: the same claimant may claim twice.
	if _, err := svc.Submit(ctx, item.ID, claimant, "first try"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Submit(ctx, item.ID, claimant, "second try"); err != nil {
		t.Fatalf("Submit (duplicate): %v", err)
	}

	list, err := svc.List(ctx, item.ID, owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 claims, got %d", len(list))
	}
}

func TestListOwnerOnly(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, owner := postItem(t, database, "Ana", "ana@example.com")
	stranger := claimantIdentity(t, database)

	_, err := svc.List(ctx, item.ID, stranger)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for stranger, got %v", err)
	}

	// Zero claims is an empty, non-nil list (distinct from a failed load).
	list, err := svc.List(ctx, item.ID, owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty list, got %v", list)
	}
}

func TestDecideApprove(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, owner := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)
	claim, _ := svc.Submit(ctx, item.ID, claimant, "red zipper")

	updated, err := svc.Decide(ctx, claim.ID, model.DecisionApprove, owner)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if updated.Status != model.ClaimStatusApproved {
		t.Errorf("expected 'Approved', got %q", updated.Status)
	}

	// Terminal: a second decision fails with the state error.
	_, err = svc.Decide(ctx, claim.ID, model.DecisionReject, owner)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("expected ErrAlreadyDecided, got %v", err)
	}
}

func TestDecideRejectIsTerminal(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, owner := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)
	claim, _ := svc.Submit(ctx, item.ID, claimant, "red zipper")

	updated, err := svc.Decide(ctx, claim.ID, model.DecisionReject, owner)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if updated.Status != model.ClaimStatusRejected {
		t.Errorf("expected 'Rejected', got %q", updated.Status)
	}

	if _, err := svc.Decide(ctx, claim.ID, model.DecisionApprove, owner); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("expected ErrAlreadyDecided, got %v", err)
	}

	got, _ := store.GetClaim(ctx, database, claim.ID)
	if got.Status != model.ClaimStatusRejected {
		t.Errorf("status must remain 'Rejected', got %q", got.Status)
	}
}

func TestDecideOwnerOnly(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, _ := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)
	claim, _ := svc.Submit(ctx, item.ID, claimant, "red zipper")

	// The claimant cannot moderate their own claim.
	_, err := svc.Decide(ctx, claim.ID, model.DecisionApprove, claimant)
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestDecideValidation(t *testing.T) {
	svc, database := setup(t)
	ctx := context.Background()

	item, owner := postItem(t, database, "Ana", "ana@example.com")
	claimant := claimantIdentity(t, database)
	claim, _ := svc.Submit(ctx, item.ID, claimant, "red zipper")

	if _, err := svc.Decide(ctx, claim.ID, "escalate", owner); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("expected ErrInvalidDecision, got %v", err)
	}
	if _, err := svc.Decide(ctx, 42, model.DecisionApprove, owner); !errors.Is(err, ErrClaimNotFound) {
		t.Errorf("expected ErrClaimNotFound, got %v", err)
	}
	if _, err := svc.Decide(ctx, claim.ID, model.DecisionApprove, model.Identity{}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}
