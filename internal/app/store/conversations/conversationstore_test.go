package conversationstore_test

import (
	"errors"
	"testing"
	"time"

	conversationstore "github.com/dalemusser/carpoolhub/internal/app/store/conversations"
	"github.com/dalemusser/carpoolhub/internal/app/system/indexes"
	"github.com/dalemusser/carpoolhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_And_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := conversationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	reqID := primitive.NewObjectID()
	created, err := store.Create(ctx, reqID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byID, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.RequestID != reqID {
		t.Errorf("RequestID: got %v, want %v", byID.RequestID, reqID)
	}

	byReq, err := store.GetByRequest(ctx, reqID)
	if err != nil {
		t.Fatalf("GetByRequest failed: %v", err)
	}
	if byReq.ID != created.ID {
		t.Errorf("GetByRequest: got %v, want %v", byReq.ID, created.ID)
	}

	if _, err := store.GetByRequest(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_Create_OnePerRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, nil); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := conversationstore.New(db)

	reqID := primitive.NewObjectID()
	if _, err := store.Create(ctx, reqID); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, reqID); !errors.Is(err, conversationstore.ErrDuplicateConversation) {
		t.Errorf("expected ErrDuplicateConversation, got %v", err)
	}
}

func TestStore_ListByRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := conversationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r1, r2, r3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	fixtures.CreateConversation(ctx, r1)
	fixtures.CreateConversation(ctx, r2)
	fixtures.CreateConversation(ctx, r3)

	got, err := store.ListByRequests(ctx, []primitive.ObjectID{r1, r3})
	if err != nil {
		t.Fatalf("ListByRequests failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len: got %d, want 2", len(got))
	}

	none, err := store.ListByRequests(ctx, nil)
	if err != nil || len(none) != 0 {
		t.Errorf("empty input: got %v, %v", none, err)
	}
}

func TestStore_ListMessageCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := conversationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	busy := fixtures.CreateConversation(ctx, primitive.NewObjectID())
	quiet := fixtures.CreateConversation(ctx, primitive.NewObjectID())
	user := primitive.NewObjectID()
	now := time.Now()
	for i := 0; i < 3; i++ {
		fixtures.CreateMessage(ctx, busy.ID, user, "hello", now.Add(time.Duration(i)*time.Second))
	}

	counts, err := store.ListMessageCounts(ctx)
	if err != nil {
		t.Fatalf("ListMessageCounts failed: %v", err)
	}
	got := map[primitive.ObjectID]int{}
	for _, c := range counts {
		got[c.ID] = c.MessageCount
	}
	if got[busy.ID] != 3 {
		t.Errorf("busy: got %d, want 3", got[busy.ID])
	}
	if n, ok := got[quiet.ID]; !ok || n != 0 {
		t.Errorf("quiet: got %d (present=%v), want 0", n, ok)
	}
}
