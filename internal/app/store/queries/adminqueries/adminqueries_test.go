package adminqueries_test

import (
	"testing"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
	"github.com/dalemusser/carpoolhub/internal/app/store/queries/adminqueries"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/dalemusser/carpoolhub/internal/testutil"
)

func TestProvider_Snapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	driver := fixtures.CreateUser(ctx, "Driver", "driver@example.com", models.RoleDriver)
	rider := fixtures.CreateUser(ctx, "Rider", "rider@example.com", models.RoleRider)
	fixtures.CreateUser(ctx, "Viewer", "viewer@example.com", models.RoleViewer)
	group := fixtures.CreateGroup(ctx, "Morning", driver.ID, rider.ID)
	req := fixtures.CreateRequest(ctx, rider.ID, driver.ID, "ride?")
	conv := fixtures.CreateConversation(ctx, req.ID)
	fixtures.CreateMessage(ctx, conv.ID, rider.ID, "ride?", time.Now())
	fixtures.CreateMessage(ctx, conv.ID, driver.ID, "sure", time.Now().Add(time.Second))

	snap, err := adminqueries.New(db).Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(snap.Users) != 3 {
		t.Errorf("users: got %d, want 3", len(snap.Users))
	}
	inGroup := 0
	for _, u := range snap.Users {
		if u.InGroup() {
			inGroup++
			if u.CarpoolID != group.ID.Hex() {
				t.Errorf("CarpoolID: got %q, want %q", u.CarpoolID, group.ID.Hex())
			}
		}
	}
	if inGroup != 2 {
		t.Errorf("users in group: got %d, want 2", inGroup)
	}

	if len(snap.Groups) != 1 || snap.Groups[0].UserCount != 2 {
		t.Errorf("groups: got %+v", snap.Groups)
	}
	if len(snap.Requests) != 1 || snap.Requests[0].FromUserRole != analytics.RoleRider {
		t.Errorf("requests: got %+v", snap.Requests)
	}
	if len(snap.Conversations) != 1 || snap.Conversations[0].MessageCount != 2 {
		t.Errorf("conversations: got %+v", snap.Conversations)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}

	d := analytics.BuildDashboard(snap, nil)
	if d.QuickStats.GroupCount != 1 {
		t.Errorf("dashboard GroupCount: got %d, want 1", d.QuickStats.GroupCount)
	}
}

func TestProvider_Snapshot_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	snap, err := adminqueries.New(db).Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Users)+len(snap.Groups)+len(snap.Requests)+len(snap.Conversations) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}
