// internal/app/analytics/types.go
package analytics

import (
	"context"
	"time"
)

// Role is a user's carpool role as stored on the user record.
type Role string

const (
	RoleDriver Role = "DRIVER"
	RoleRider  Role = "RIDER"
	RoleViewer Role = "VIEWER"
)

// Status is a user's account status. Anything other than StatusActive
// counts as inactive.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Dated is anything with a creation timestamp that can be bucketed by week.
type Dated interface {
	Created() time.Time
}

// User is the read-only view of a user needed by the dashboard.
type User struct {
	ID          string
	Role        Role
	Status      Status
	IsOnboarded bool
	// DaysWorking is a comma-joined Sunday-first bitmask, e.g. "0,1,1,1,1,1,0".
	DaysWorking string
	CarpoolID   string
	DateCreated time.Time
}

func (u User) Created() time.Time { return u.DateCreated }

// Active reports whether the user's status is ACTIVE.
func (u User) Active() bool { return u.Status == StatusActive }

// InGroup reports whether the user belongs to a carpool group.
func (u User) InGroup() bool { return u.CarpoolID != "" }

// Group is a carpool group with its membership size.
type Group struct {
	ID          string
	UserCount   int
	DateCreated time.Time
}

func (g Group) Created() time.Time { return g.DateCreated }

// Request is a connect request annotated with the sender's role.
type Request struct {
	ID           string
	FromUserRole Role
	DateCreated  time.Time
}

func (r Request) Created() time.Time { return r.DateCreated }

// Conversation carries the message count of a single conversation.
type Conversation struct {
	ID           string
	MessageCount int
}

// Snapshot is one consistent read of every collection the dashboard needs.
// Snapshots are never mutated; a refresh replaces the whole value.
type Snapshot struct {
	Users         []User
	Groups        []Group
	Requests      []Request
	Conversations []Conversation
	FetchedAt     time.Time
}

// In returns a copy of the snapshot with every timestamp converted to loc,
// so week bucketing happens in that location.
func (s Snapshot) In(loc *time.Location) Snapshot {
	if loc == nil {
		return s
	}
	out := Snapshot{
		Users:         make([]User, len(s.Users)),
		Groups:        make([]Group, len(s.Groups)),
		Requests:      make([]Request, len(s.Requests)),
		Conversations: s.Conversations,
		FetchedAt:     s.FetchedAt,
	}
	for i, u := range s.Users {
		u.DateCreated = u.DateCreated.In(loc)
		out.Users[i] = u
	}
	for i, g := range s.Groups {
		g.DateCreated = g.DateCreated.In(loc)
		out.Groups[i] = g
	}
	for i, r := range s.Requests {
		r.DateCreated = r.DateCreated.In(loc)
		out.Requests[i] = r
	}
	return out
}

// Provider supplies dashboard snapshots. The analytics package never
// fetches data itself.
type Provider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}
