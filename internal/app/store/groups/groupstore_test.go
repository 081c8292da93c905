package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/dalemusser/carpoolhub/internal/app/store/groups"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/dalemusser/carpoolhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.CarpoolGroup{Name: "  Morning Crew "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Morning Crew" {
		t.Errorf("Name: got %q", created.Name)
	}
	if created.Status != models.StatusActive {
		t.Errorf("Status: got %q, want %q", created.Status, models.StatusActive)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != created.Name {
		t.Errorf("GetByID name: got %q", got.Name)
	}
}

func TestStore_Create_RequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.CarpoolGroup{Name: "   "}); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListWithCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "A", "a@example.com", models.RoleDriver)
	b := fixtures.CreateUser(ctx, "B", "b@example.com", models.RoleRider)
	c := fixtures.CreateUser(ctx, "C", "c@example.com", models.RoleRider)
	full := fixtures.CreateGroup(ctx, "Full", a.ID, b.ID, c.ID)
	empty := fixtures.CreateGroup(ctx, "Empty")

	counts, err := store.ListWithCounts(ctx)
	if err != nil {
		t.Fatalf("ListWithCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("len: got %d, want 2", len(counts))
	}

	byID := map[primitive.ObjectID]int{}
	for _, gc := range counts {
		byID[gc.ID] = gc.UserCount
	}
	if byID[full.ID] != 3 {
		t.Errorf("full group: got %d, want 3", byID[full.ID])
	}
	if n, ok := byID[empty.ID]; !ok || n != 0 {
		t.Errorf("empty group: got %d (present=%v), want 0", n, ok)
	}
}
