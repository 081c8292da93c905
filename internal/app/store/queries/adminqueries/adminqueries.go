// Package adminqueries reads everything the admin data dashboard needs in
// one pass over the users, groups, requests and conversations collections.
package adminqueries

import (
	"context"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
	conversationstore "github.com/dalemusser/carpoolhub/internal/app/store/conversations"
	groupstore "github.com/dalemusser/carpoolhub/internal/app/store/groups"
	requeststore "github.com/dalemusser/carpoolhub/internal/app/store/requests"
	userstore "github.com/dalemusser/carpoolhub/internal/app/store/users"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Provider implements analytics.Provider over MongoDB.
type Provider struct {
	users         *userstore.Store
	groups        *groupstore.Store
	requests      *requeststore.Store
	conversations *conversationstore.Store
	now           func() time.Time
}

var _ analytics.Provider = (*Provider)(nil)

func New(db *mongo.Database) *Provider {
	return &Provider{
		users:         userstore.New(db),
		groups:        groupstore.New(db),
		requests:      requeststore.New(db),
		conversations: conversationstore.New(db),
		now:           time.Now,
	}
}

// Snapshot runs the four reads concurrently. Any failure fails the whole
// snapshot so the dashboard never mixes stale and fresh collections.
func (p *Provider) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	var (
		users    []models.User
		groups   []groupstore.GroupCount
		requests []requeststore.SenderRole
		convs    []conversationstore.MessageCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = p.users.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		groups, err = p.groups.ListWithCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		requests, err = p.requests.ListWithSenderRole(gctx)
		return err
	})
	g.Go(func() (err error) {
		convs, err = p.conversations.ListMessageCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Snapshot{}, err
	}

	return analytics.Snapshot{
		Users:         lo.Map(users, func(u models.User, _ int) analytics.User { return toUser(u) }),
		Groups:        lo.Map(groups, func(gc groupstore.GroupCount, _ int) analytics.Group { return toGroup(gc) }),
		Requests:      lo.Map(requests, func(r requeststore.SenderRole, _ int) analytics.Request { return toRequest(r) }),
		Conversations: lo.Map(convs, func(c conversationstore.MessageCount, _ int) analytics.Conversation { return toConversation(c) }),
		FetchedAt:     p.now().UTC(),
	}, nil
}

func toUser(u models.User) analytics.User {
	out := analytics.User{
		ID:          u.ID.Hex(),
		Role:        analytics.Role(u.Role),
		Status:      analytics.Status(u.Status),
		IsOnboarded: u.IsOnboarded,
		DaysWorking: u.DaysWorking,
		DateCreated: u.CreatedAt,
	}
	if u.CarpoolID != nil && !u.CarpoolID.IsZero() {
		out.CarpoolID = u.CarpoolID.Hex()
	}
	return out
}

func toGroup(g groupstore.GroupCount) analytics.Group {
	return analytics.Group{ID: g.ID.Hex(), UserCount: g.UserCount, DateCreated: g.CreatedAt}
}

func toRequest(r requeststore.SenderRole) analytics.Request {
	return analytics.Request{ID: r.ID.Hex(), FromUserRole: analytics.Role(r.FromUserRole), DateCreated: r.CreatedAt}
}

func toConversation(c conversationstore.MessageCount) analytics.Conversation {
	return analytics.Conversation{ID: c.ID.Hex(), MessageCount: c.MessageCount}
}
