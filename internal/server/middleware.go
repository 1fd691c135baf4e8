package server

import (
	"context"

	authdomain "github.com/LangoJordan/annonceluzy/internal/auth/domain"
	"github.com/LangoJordan/annonceluzy/internal/gate"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	"github.com/LangoJordan/annonceluzy/pkg/tenantctx"
	"github.com/gin-gonic/gin"
)

const (
	contextPrincipalKey = "principal"
	contextSessionKey   = "session"
	contextRouteNameKey = "route_name"
	contextSelAgencyKey = "selected_agency_id"
	contextSelSpaceKey  = "selected_space_id"
)

// redirectPaths maps gate redirect targets to browser paths. Gates reason
// about route names only; the path shape lives here.
var redirectPaths = map[string]string{
	gate.TargetSelectAgency:      "/select-agency",
	gate.TargetSubscriptionRenew: "/subscription/renew",
	gate.TargetHome:              "/",
}

// RouteName tags the request with its logical route name so gates can
// reason about routes without knowing URL shapes.
func (s *Server) RouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextRouteNameKey, name)
		c.Next()
	}
}

func routeNameFromContext(c *gin.Context) string {
	return c.GetString(contextRouteNameKey)
}

// AuthRequired authenticates the session cookie and loads the principal.
// Requests without a valid session never reach the gates.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		principal, err := s.users.FindByID(c.Request.Context(), sess.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextSessionKey, sess)
		c.Set(contextPrincipalKey, principal)
		c.Next()
	}
}

func principalFromContext(c *gin.Context) (*identitydomain.User, bool) {
	v, ok := c.Get(contextPrincipalKey)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*identitydomain.User)
	return principal, ok && principal != nil
}

func sessionFromContext(c *gin.Context) (*authdomain.Session, bool) {
	v, ok := c.Get(contextSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*authdomain.Session)
	return sess, ok && sess != nil
}

// applyDecision translates a gate decision into the HTTP response. Returns
// true when the request was short-circuited.
func (s *Server) applyDecision(c *gin.Context, stage string, d gate.Decision) bool {
	switch d.Kind {
	case gate.KindAllow:
		return false
	case gate.KindRedirect:
		s.metrics.ObserveGate(stage, "redirect")
		path, ok := redirectPaths[d.Target]
		if !ok {
			path = "/"
		}
		c.Redirect(302, path)
		c.Abort()
		return true
	default:
		s.metrics.ObserveGate(stage, "deny")
		c.AbortWithStatusJSON(d.Code, d.Payload)
		return true
	}
}

// StatusGate blocks pending and blocked accounts before anything else runs.
func (s *Server) StatusGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := principalFromContext(c)

		decision, err := s.statusGate.Check(c.Request.Context(), principal)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if s.applyDecision(c, "status", decision) {
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on the principal's role.
func (s *Server) RequireRole(roles ...identitydomain.Role) gin.HandlerFunc {
	allowed := gate.Roles(roles...)
	return func(c *gin.Context) {
		principal, _ := principalFromContext(c)

		if s.applyDecision(c, "role", gate.RequireRole(principal, allowed)) {
			return
		}
		c.Next()
	}
}

// ResolveAgencyContext determines the effective agency/space for the request
// and installs it as the tenant context. The gin keys are only set when a
// session selection was validated against a live position.
func (s *Server) ResolveAgencyContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := principalFromContext(c)
		sess, _ := sessionFromContext(c)

		tenant, decision, err := s.resolver.Resolve(c.Request.Context(), principal, s.selectionStore(sess))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if s.applyDecision(c, "agency_context", decision) {
			return
		}

		if tenant.AgencyID != 0 {
			ctx := tenantctx.WithTenant(c.Request.Context(), tenant)
			c.Request = c.Request.WithContext(ctx)
		}
		if tenant.AgencyID != 0 && tenant.SpaceID != 0 {
			c.Set(contextSelAgencyKey, tenant.AgencyID)
			c.Set(contextSelSpaceKey, tenant.SpaceID)
		}
		c.Next()
	}
}

// SubscriptionGate redirects tenant-bound requests to renewal when the
// resolved agency has no active subscription.
func (s *Server) SubscriptionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := principalFromContext(c)

		tenant, _ := tenantctx.FromContext(c.Request.Context())
		decision, err := s.subGate.Check(c.Request.Context(), principal, tenant, routeNameFromContext(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if s.applyDecision(c, "subscription", decision) {
			return
		}
		c.Next()
	}
}

// sessionSelectionStore adapts a request's session row to the resolver's
// selection store. Clear writes through to the session table and keeps the
// in-memory row consistent so later middleware sees the cleared state.
type sessionSelectionStore struct {
	authsvc authdomain.Service
	session *authdomain.Session
}

func (s *Server) selectionStore(sess *authdomain.Session) gate.SelectionStore {
	return &sessionSelectionStore{authsvc: s.authsvc, session: sess}
}

func (st *sessionSelectionStore) Get(ctx context.Context) (gate.Selection, bool, error) {
	if st.session == nil {
		return gate.Selection{}, false, nil
	}
	sel, ok := st.session.CurrentSelection()
	if !ok {
		return gate.Selection{}, false, nil
	}
	return gate.Selection{AgencyID: sel.AgencyID, SpaceID: sel.SpaceID}, true, nil
}

func (st *sessionSelectionStore) Clear(ctx context.Context) error {
	if st.session == nil {
		return nil
	}
	if err := st.authsvc.ClearSelection(ctx, st.session.ID); err != nil {
		return err
	}
	st.session.SelectedAgencyID = nil
	st.session.SelectedSpaceID = nil
	return nil
}
