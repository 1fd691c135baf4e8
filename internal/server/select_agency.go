package server

import (
	"net/http"
	"strings"

	authdomain "github.com/LangoJordan/annonceluzy/internal/auth/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type SelectAgencyRequest struct {
	AgencyID string `json:"agency_id"`
	SpaceID  string `json:"space_id"`
}

// ShowSelectAgency lists the positions the user can act under. This is the
// page the resolver redirects to when a selection is missing or stale.
func (s *Server) ShowSelectAgency(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	grants, err := s.agencySvc.ListGrantsByUser(c.Request.Context(), principal.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": grants})
}

// SelectAgency stores the chosen agency/space pair on the session. The pair
// is validated against a live position before it is written; a choice the
// user does not hold is forbidden, not silently ignored.
func (s *Server) SelectAgency(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	sess, ok := sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req SelectAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	agencyID, err := parseID(req.AgencyID)
	if err != nil {
		AbortWithError(c, newValidationError("agency_id", "invalid_agency_id", "invalid agency id"))
		return
	}
	spaceID, err := parseID(req.SpaceID)
	if err != nil {
		AbortWithError(c, newValidationError("space_id", "invalid_space_id", "invalid space id"))
		return
	}

	valid, err := s.positions.GrantExists(c.Request.Context(), principal.ID, agencyID, spaceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !valid {
		AbortWithError(c, ErrForbidden)
		return
	}

	if err := s.authsvc.SetSelection(c.Request.Context(), sess.ID, authdomain.Selection{
		AgencyID: agencyID,
		SpaceID:  spaceID,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected_agency_id": agencyID.String(),
		"selected_space_id":  spaceID.String(),
	})
}

func (s *Server) ClearSelection(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.authsvc.ClearSelection(c.Request.Context(), sess.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
