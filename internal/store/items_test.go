package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
)

// newTestItem creates an item with a tiny fake photo for tests.
func newTestItem(t *testing.T, database *sql.DB, userID int64, name string) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), database, &model.Item{
		Name:         name,
		Category:     "Accessories",
		Description:  "test item",
		Place:        "Library",
		FoundAt:      time.Now(),
		HintQuestion: "what color is the zipper?",
		HintAnswer:   "red",
		FoundBy:      userID,
	}, []byte("fake photo data"), "image/jpeg")
	if err != nil {
		t.Fatalf("creating test item: %v", err)
	}
	return item
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, database, "Ana", "ana@example.com")
	item := newTestItem(t, database, user.ID, "Blue Backpack")

	if item.Name != "Blue Backpack" {
		t.Errorf("expected name 'Blue Backpack', got %q", item.Name)
	}
	if item.Status != model.ItemStatusActive {
		t.Errorf("expected status 'active', got %q", item.Status)
	}
	if item.PosterName != "Ana" {
		t.Errorf("expected joined poster name, got %q", item.PosterName)
	}
	if item.PhotoURL == "" {
		t.Error("expected photo URL for item with photo")
	}

	// The hint answer is write-only: item queries must never return it.
	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.HintAnswer != "" {
		t.Errorf("hint answer leaked from item query: %q", got.HintAnswer)
	}
	if got.HintQuestion != "what color is the zipper?" {
		t.Errorf("expected hint question, got %q", got.HintQuestion)
	}
}

func TestListItemsByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, database, "Ana", "ana@example.com")
	newTestItem(t, database, user.ID, "First")
	second := newTestItem(t, database, user.ID, "Second")

	// Mark the second claimed through its (approved) claim.
	claim, _ := CreateClaim(ctx, database, second.ID, model.Claimant{Name: "Bo", Email: "bo@example.com"}, "red")
	if _, err := DecideClaim(ctx, database, claim.ID, model.ClaimStatusApproved); err != nil {
		t.Fatalf("DecideClaim: %v", err)
	}

	all, _ := ListItems(ctx, database, "")
	if len(all) != 2 {
		t.Errorf("expected 2 items, got %d", len(all))
	}

	active, _ := ListItems(ctx, database, model.ItemStatusActive)
	if len(active) != 1 || active[0].Name != "First" {
		t.Errorf("expected only 'First' active, got %v", active)
	}
}

func TestListItemsByUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ana := newTestUser(t, database, "Ana", "ana@example.com")
	bo := newTestUser(t, database, "Bo", "bo@example.com")
	newTestItem(t, database, ana.ID, "Ana's Umbrella")
	newTestItem(t, database, bo.ID, "Bo's Charger")

	mine, err := ListItemsByUser(ctx, database, ana.ID)
	if err != nil {
		t.Fatalf("ListItemsByUser: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Ana's Umbrella" {
		t.Errorf("expected only Ana's item, got %v", mine)
	}
}

func TestSoftDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, database, "Ana", "ana@example.com")
	item := newTestItem(t, database, user.ID, "Delete Me")
	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	items, _ := ListItems(ctx, database, "")
	if len(items) != 0 {
		t.Errorf("expected 0 items after soft delete, got %d", len(items))
	}

	// Should still be fetchable by ID (for claim history).
	got, _ := GetItem(ctx, database, item.ID)
	if got == nil {
		t.Error("expected soft-deleted item to still be fetchable by ID")
	}
}

func TestItemPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, database, "Ana", "ana@example.com")
	item := newTestItem(t, database, user.ID, "Photo Item")

	data, mime, err := GetItemPhoto(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if string(data) != "fake photo data" {
		t.Errorf("expected photo data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}
