// Package tenantctx carries the resolved tenant of a request. Handlers read
// the agency/space pair from here instead of touching the session.
package tenantctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Tenant is the effective agency/space a request acts within. SpaceID is zero
// for agency owners, who act on their whole agency.
type Tenant struct {
	AgencyID snowflake.ID
	SpaceID  snowflake.ID
}

type tenantKey struct{}

// WithTenant stores the resolved tenant in the context.
func WithTenant(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext returns the resolved tenant, if any.
func FromContext(ctx context.Context) (Tenant, bool) {
	if ctx == nil {
		return Tenant{}, false
	}
	t, ok := ctx.Value(tenantKey{}).(Tenant)
	if !ok || t.AgencyID == 0 {
		return Tenant{}, false
	}
	return t, true
}
