package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

func (s *Server) ProfileEdit(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           principal.ID.String(),
		"email":        principal.Email,
		"display_name": principal.DisplayName,
		"phone":        principal.Phone,
		"role":         string(principal.Role),
	})
}

func (s *Server) ProfileUpdate(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		fields["display_name"] = name
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		fields["phone"] = phone
	}
	if len(fields) == 0 {
		AbortWithError(c, newValidationError("profile", "empty_update", "nothing to update"))
		return
	}

	if err := s.users.UpdateFields(c.Request.Context(), principal.ID, fields); err != nil {
		AbortWithError(c, err)
		return
	}

	updated, err := s.users.FindByID(c.Request.Context(), principal.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userView(updated))
}
