package server

import (
	"net/http"
	"strings"

	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	"github.com/gin-gonic/gin"
)

type CreateAgencyRequest struct {
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type CreateSpaceRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

type GrantPositionRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (s *Server) CreateAgency(c *gin.Context) {
	var req CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "required", "name is required"))
		return
	}
	ownerID, err := parseID(req.OwnerUserID)
	if err != nil {
		AbortWithError(c, newValidationError("owner_user_id", "invalid_user_id", "invalid user id"))
		return
	}

	agency, err := s.agencySvc.CreateAgency(c.Request.Context(), agencydomain.CreateAgencyRequest{
		Name:        req.Name,
		OwnerUserID: ownerID,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, agency)
}

func (s *Server) CreateSpace(c *gin.Context) {
	agencyID, err := parseID(c.Param("agencyId"))
	if err != nil {
		AbortWithError(c, newValidationError("agency_id", "invalid_agency_id", "invalid agency id"))
		return
	}

	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "required", "name is required"))
		return
	}

	space, err := s.agencySvc.CreateSpace(c.Request.Context(), agencydomain.CreateSpaceRequest{
		AgencyID: agencyID,
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, space)
}

func (s *Server) GrantPosition(c *gin.Context) {
	spaceID, err := parseID(c.Param("spaceId"))
	if err != nil {
		AbortWithError(c, newValidationError("space_id", "invalid_space_id", "invalid space id"))
		return
	}

	var req GrantPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user id"))
		return
	}
	role := agencydomain.PositionRole(strings.TrimSpace(req.Role))
	if !role.Valid() {
		AbortWithError(c, newValidationError("role", "invalid_role", "invalid position role"))
		return
	}

	position, err := s.agencySvc.GrantPosition(c.Request.Context(), agencydomain.GrantPositionRequest{
		UserID:  userID,
		SpaceID: spaceID,
		Role:    role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, position)
}

func (s *Server) RevokePosition(c *gin.Context) {
	spaceID, err := parseID(c.Param("spaceId"))
	if err != nil {
		AbortWithError(c, newValidationError("space_id", "invalid_space_id", "invalid space id"))
		return
	}
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user id"))
		return
	}

	if err := s.agencySvc.RevokePosition(c.Request.Context(), userID, spaceID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
