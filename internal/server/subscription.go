package server

import (
	"net/http"

	subscriptiondomain "github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"github.com/LangoJordan/annonceluzy/pkg/tenantctx"
	"github.com/gin-gonic/gin"
)

type RenewSubscriptionRequest struct {
	Months int `json:"months"`
}

func (s *Server) SubscriptionIndex(c *gin.Context) {
	tenant, ok := tenantctx.FromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	subs, err := s.subscriptionSvc.List(c.Request.Context(), tenant.AgencyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// SubscriptionRenew is the renewal landing page. It must stay reachable with
// a lapsed subscription; the gate keeps it on its exempt list.
func (s *Server) SubscriptionRenew(c *gin.Context) {
	tenant, ok := tenantctx.FromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	active, err := s.subscriptionSvc.HasActive(c.Request.Context(), tenant.AgencyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agency_id": tenant.AgencyID.String(),
		"active":    active,
	})
}

func (s *Server) SubscriptionStore(c *gin.Context) {
	tenant, ok := tenantctx.FromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.Months < 0 {
		AbortWithError(c, newValidationError("months", "invalid_months", "months must be positive"))
		return
	}

	sub, err := s.subscriptionSvc.Renew(c.Request.Context(), subscriptiondomain.RenewRequest{
		AgencyID: tenant.AgencyID,
		Months:   req.Months,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}
