package server

import (
	"net/http"
	"strings"

	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	authdomain "github.com/LangoJordan/annonceluzy/internal/auth/domain"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	AgencyName  string `json:"agency_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func userView(u *identitydomain.User) UserView {
	return UserView{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
	}
}

func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	// Self-serve signup covers visitors and agency owners. Staff roles are
	// provisioned through the admin surface.
	role := identitydomain.Role(req.Role)
	switch role {
	case "", identitydomain.RoleVisitor:
		role = identitydomain.RoleVisitor
	case identitydomain.RoleAgency:
		if strings.TrimSpace(req.AgencyName) == "" {
			AbortWithError(c, newValidationError("agency_name", "required", "agency name is required for agency accounts"))
			return
		}
	default:
		AbortWithError(c, identitydomain.ErrInvalidRole)
		return
	}

	user, err := s.authsvc.Signup(c.Request.Context(), authdomain.SignupRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Role:        role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if role == identitydomain.RoleAgency {
		agency, err := s.agencySvc.CreateAgency(c.Request.Context(), agencydomain.CreateAgencyRequest{
			Name:        req.AgencyName,
			OwnerUserID: user.ID,
			Email:       user.Email,
			Phone:       user.Phone,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if err := s.users.UpdateFields(c.Request.Context(), user.ID, map[string]any{"agency_id": agency.ID}); err != nil {
			AbortWithError(c, err)
			return
		}
		agencyID := agency.ID
		user.AgencyID = &agencyID
	}

	c.JSON(http.StatusCreated, userView(user))
}

func (s *Server) Login(c *gin.Context) {
	allowed, err := s.loginLimiter.Allow(c.Request.Context(), c.ClientIP())
	if err != nil {
		// rate limiting is best effort; a broken redis must not lock
		// everyone out
		s.log.Warn("login limiter unavailable", zap.Error(err))
		allowed = true
	}
	if !allowed {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	c.JSON(http.StatusOK, result.Session)
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}
