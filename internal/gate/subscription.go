package gate

import (
	"context"
	"time"

	"github.com/LangoJordan/annonceluzy/internal/clock"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	"github.com/LangoJordan/annonceluzy/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
)

// SubscriptionStore answers whether an agency holds an active subscription
// at a point in time.
type SubscriptionStore interface {
	HasActive(ctx context.Context, agencyID snowflake.ID, now time.Time) (bool, error)
}

// SubscriptionGate redirects tenant-bound requests to renewal when the
// effective agency's subscription has lapsed. A small route allow-list stays
// reachable so the owner can always fix the situation.
type SubscriptionGate struct {
	subscriptions SubscriptionStore
	clk           clock.Clock
	exempt        map[string]struct{}
}

func NewSubscriptionGate(subscriptions SubscriptionStore, clk clock.Clock, exemptRoutes []string) *SubscriptionGate {
	exempt := make(map[string]struct{}, len(exemptRoutes))
	for _, route := range exemptRoutes {
		exempt[route] = struct{}{}
	}
	return &SubscriptionGate{
		subscriptions: subscriptions,
		clk:           clk,
		exempt:        exempt,
	}
}

// Exempt reports whether a route name bypasses the gate.
func (g *SubscriptionGate) Exempt(routeName string) bool {
	_, ok := g.exempt[routeName]
	return ok
}

// Check gates the request on the effective agency's subscription. Only
// agency and employee principals acting within a tenant are gated; the
// decision is always evaluated against the resolved tenant, never a raw
// session value.
func (g *SubscriptionGate) Check(ctx context.Context, principal *identitydomain.User, tenant tenantctx.Tenant, routeName string) (Decision, error) {
	if principal == nil {
		return Allow(), nil
	}
	switch principal.Role {
	case identitydomain.RoleAgency, identitydomain.RoleEmployee:
	default:
		return Allow(), nil
	}
	if tenant.AgencyID == 0 {
		return Allow(), nil
	}
	if g.Exempt(routeName) {
		return Allow(), nil
	}

	active, err := g.subscriptions.HasActive(ctx, tenant.AgencyID, g.clk.Now())
	if err != nil {
		return Decision{}, err
	}
	if !active {
		return Redirect(TargetSubscriptionRenew), nil
	}
	return Allow(), nil
}
