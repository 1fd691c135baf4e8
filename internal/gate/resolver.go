package gate

import (
	"context"

	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	"github.com/LangoJordan/annonceluzy/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// Selection is a session-stored tenant choice.
type Selection struct {
	AgencyID snowflake.ID
	SpaceID  snowflake.ID
}

// SelectionStore is the per-session view of the tenant selection the
// resolver works against. The resolver only reads and, on stale state,
// clears; writing a new selection is an explicit user action elsewhere.
type SelectionStore interface {
	Get(ctx context.Context) (Selection, bool, error)
	Clear(ctx context.Context) error
}

// PositionStore is the durable position data used to validate selections.
type PositionStore interface {
	FindGrantsByUser(ctx context.Context, userID snowflake.ID) ([]agencydomain.PositionGrant, error)
	GrantExists(ctx context.Context, userID, agencyID, spaceID snowflake.ID) (bool, error)
}

// Resolver decides the effective agency/space for a request.
type Resolver struct {
	log       *zap.Logger
	positions PositionStore
}

func NewResolver(log *zap.Logger, positions PositionStore) *Resolver {
	return &Resolver{
		log:       log.Named("gate.resolver"),
		positions: positions,
	}
}

// Resolve returns the tenant context for the principal, or a redirect when
// the caller must (re)select an agency. The branches are mutually exclusive
// per role:
//
//	anonymous, admin, manager        → empty context
//	agency                           → own agency, no session or position read
//	employee/visitor, no positions   → empty context
//	employee/visitor with positions  → validated session selection
//
// A selection that no longer matches a position is session rot, not an
// authorization failure: the stale keys are cleared and the caller is sent
// back to selection.
func (r *Resolver) Resolve(ctx context.Context, principal *identitydomain.User, selections SelectionStore) (tenantctx.Tenant, Decision, error) {
	if principal == nil {
		return tenantctx.Tenant{}, Allow(), nil
	}

	switch principal.Role {
	case identitydomain.RoleAdmin, identitydomain.RoleManager:
		return tenantctx.Tenant{}, Allow(), nil

	case identitydomain.RoleAgency:
		if principal.AgencyID == nil {
			// an agency account without its agency row is broken
			// state that must surface, not pass silently
			r.log.Warn("agency principal without agency id",
				zap.String("user_id", principal.ID.String()),
			)
			return tenantctx.Tenant{}, Redirect(TargetHome), nil
		}
		return tenantctx.Tenant{AgencyID: *principal.AgencyID}, Allow(), nil

	case identitydomain.RoleEmployee, identitydomain.RoleVisitor:
		return r.resolveFromSelection(ctx, principal, selections)

	default:
		return tenantctx.Tenant{}, Allow(), nil
	}
}

func (r *Resolver) resolveFromSelection(ctx context.Context, principal *identitydomain.User, selections SelectionStore) (tenantctx.Tenant, Decision, error) {
	grants, err := r.positions.FindGrantsByUser(ctx, principal.ID)
	if err != nil {
		return tenantctx.Tenant{}, Decision{}, err
	}
	if len(grants) == 0 {
		// plain visitor with no tenant duties
		return tenantctx.Tenant{}, Allow(), nil
	}

	selection, ok, err := selections.Get(ctx)
	if err != nil {
		return tenantctx.Tenant{}, Decision{}, err
	}
	if !ok {
		return tenantctx.Tenant{}, Redirect(TargetSelectAgency), nil
	}

	valid, err := r.positions.GrantExists(ctx, principal.ID, selection.AgencyID, selection.SpaceID)
	if err != nil {
		return tenantctx.Tenant{}, Decision{}, err
	}
	if !valid {
		// position revoked or session tampered; self-heal and re-select
		if err := selections.Clear(ctx); err != nil {
			return tenantctx.Tenant{}, Decision{}, err
		}
		r.log.Info("stale tenant selection cleared",
			zap.String("user_id", principal.ID.String()),
			zap.String("agency_id", selection.AgencyID.String()),
			zap.String("space_id", selection.SpaceID.String()),
		)
		return tenantctx.Tenant{}, Redirect(TargetSelectAgency), nil
	}

	return tenantctx.Tenant{
		AgencyID: selection.AgencyID,
		SpaceID:  selection.SpaceID,
	}, Allow(), nil
}
