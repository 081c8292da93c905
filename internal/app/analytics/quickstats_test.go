package analytics_test

import (
	"testing"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
)

func TestDaysFrequency(t *testing.T) {
	riders := []analytics.User{
		{DaysWorking: "0,1,1,1,1,1,0"},
		{DaysWorking: "1,1,0,0,0,0,0"},
	}
	drivers := []analytics.User{
		{DaysWorking: "0,0,0,0,0,1,1"},
	}

	riderDays, driverDays := analytics.DaysFrequency(riders, drivers)

	wantRiders := [7]int{1, 2, 1, 1, 1, 1, 0}
	wantDrivers := [7]int{0, 0, 0, 0, 0, 1, 1}
	if riderDays != wantRiders {
		t.Errorf("riders: got %v, want %v", riderDays, wantRiders)
	}
	if driverDays != wantDrivers {
		t.Errorf("drivers: got %v, want %v", driverDays, wantDrivers)
	}
}

func TestDaysFrequency_Malformed(t *testing.T) {
	riders := []analytics.User{
		{DaysWorking: ""},
		{DaysWorking: "yes,no"},
		{DaysWorking: "1, 1,2,1"},
		{DaysWorking: "1,1,1,1,1,1,1,1,1"},
	}

	riderDays, driverDays := analytics.DaysFrequency(riders, nil)

	want := [7]int{2, 1, 1, 2, 1, 1, 1}
	if riderDays != want {
		t.Errorf("riders: got %v, want %v", riderDays, want)
	}
	if driverDays != ([7]int{}) {
		t.Errorf("drivers: got %v, want zeros", driverDays)
	}
	for i, n := range riderDays {
		if n > len(riders) {
			t.Errorf("day %d: %d exceeds population %d", i, n, len(riders))
		}
	}
}

func TestComputeQuickStats(t *testing.T) {
	conversations := []analytics.Conversation{
		{MessageCount: 1},
		{MessageCount: 3},
		{MessageCount: 5},
		{MessageCount: 0},
	}
	groups := []analytics.Group{
		{UserCount: 1},
		{UserCount: 2},
		{UserCount: 4},
	}
	users := []analytics.User{
		{Role: analytics.RoleDriver, Status: analytics.StatusActive, CarpoolID: "g1"},
		{Role: analytics.RoleDriver, Status: analytics.StatusActive},
		{Role: analytics.RoleRider, Status: analytics.StatusActive, CarpoolID: "g1"},
		{Role: analytics.RoleRider, Status: analytics.StatusActive, CarpoolID: "g2"},
		{Role: analytics.RoleRider, Status: analytics.StatusActive},
		{Role: analytics.RoleViewer, Status: analytics.StatusActive},
		{Role: analytics.RoleRider, Status: analytics.StatusInactive, CarpoolID: "g2"},
	}

	qs := analytics.ComputeQuickStats(conversations, groups, users)

	if qs.TotalConversations != 4 {
		t.Errorf("TotalConversations: got %d, want 4", qs.TotalConversations)
	}
	if qs.ConversationsWithMessages != 2 {
		t.Errorf("ConversationsWithMessages: got %d, want 2", qs.ConversationsWithMessages)
	}
	if qs.AvgMessagesWithMessages != 4 {
		t.Errorf("AvgMessagesWithMessages: got %v, want 4", qs.AvgMessagesWithMessages)
	}
	if qs.AvgMessages != 2.25 {
		t.Errorf("AvgMessages: got %v, want 2.25", qs.AvgMessages)
	}
	if qs.GroupCount != 2 {
		t.Errorf("GroupCount: got %d, want 2", qs.GroupCount)
	}
	if qs.PercentDriversInGroup != "50%" {
		t.Errorf("PercentDriversInGroup: got %q, want %q", qs.PercentDriversInGroup, "50%")
	}
	// 2 of 4 non-driver active users (viewer included) are riders in a group.
	if qs.PercentRidersInGroup != "50%" {
		t.Errorf("PercentRidersInGroup: got %q, want %q", qs.PercentRidersInGroup, "50%")
	}
	if qs.AverageRidersPerGroup != 1 {
		t.Errorf("AverageRidersPerGroup: got %v, want 1", qs.AverageRidersPerGroup)
	}
}

func TestComputeQuickStats_ZeroDenominators(t *testing.T) {
	qs := analytics.ComputeQuickStats(nil, nil, nil)

	if qs.AvgMessages != 0 || qs.AvgMessagesWithMessages != 0 {
		t.Errorf("averages: got %v / %v, want 0 / 0", qs.AvgMessages, qs.AvgMessagesWithMessages)
	}
	if qs.PercentDriversInGroup != "0%" || qs.PercentRidersInGroup != "0%" {
		t.Errorf("percents: got %q / %q, want 0%% / 0%%", qs.PercentDriversInGroup, qs.PercentRidersInGroup)
	}
	if qs.AverageRidersPerGroup != 0 {
		t.Errorf("AverageRidersPerGroup: got %v, want 0", qs.AverageRidersPerGroup)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        string
	}{
		{1, 8, "12.5%"},
		{1, 3, "33.3%"},
		{2, 3, "66.7%"},
		{3, 3, "100%"},
		{23, 80, "28.8%"},
		{0, 0, "0%"},
	}
	for _, tt := range tests {
		if got := analytics.Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d): got %q, want %q", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestCountUsers_Closure(t *testing.T) {
	var all []analytics.User
	for _, role := range []analytics.Role{analytics.RoleDriver, analytics.RoleRider, analytics.RoleViewer, ""} {
		for _, status := range []analytics.Status{analytics.StatusActive, analytics.StatusInactive, "DISABLED"} {
			for _, onboarded := range []bool{true, false} {
				all = append(all, analytics.User{Role: role, Status: status, IsOnboarded: onboarded})
			}
		}
	}

	counts := analytics.CountUsers(all)

	sum := 0
	for i, c := range counts.Cells() {
		if c.Driver+c.Rider+c.Viewer != c.Total {
			t.Errorf("cell %d: %d+%d+%d != %d", i, c.Driver, c.Rider, c.Viewer, c.Total)
		}
		sum += c.Total
	}
	if sum != len(all) {
		t.Errorf("cells cover %d users, want %d", sum, len(all))
	}

	if got := counts.ActiveOnboarded; got != (analytics.RoleCounts{Total: 4, Driver: 1, Rider: 1, Viewer: 2}) {
		t.Errorf("ActiveOnboarded: got %+v", got)
	}
	if got := counts.InactiveNotOnboarded; got != (analytics.RoleCounts{Total: 8, Driver: 2, Rider: 2, Viewer: 4}) {
		t.Errorf("InactiveNotOnboarded: got %+v", got)
	}
}

func TestComputeQuickStats_PercentRounding(t *testing.T) {
	users := make([]analytics.User, 80)
	for i := range users {
		users[i] = analytics.User{Role: analytics.RoleDriver, Status: analytics.StatusActive}
		if i < 23 {
			users[i].CarpoolID = "g1"
		}
	}

	qs := analytics.ComputeQuickStats(nil, nil, users)

	if qs.PercentDriversInGroup != "28.8%" {
		t.Errorf("PercentDriversInGroup: got %q, want %q", qs.PercentDriversInGroup, "28.8%")
	}
}
