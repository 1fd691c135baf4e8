package domain

import (
	"context"
	"time"

	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*identitydomain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	// SetSelection and ClearSelection are the only mutators of the
	// session's tenant selection.
	SetSelection(ctx context.Context, sessionID snowflake.ID, selection Selection) error
	ClearSelection(ctx context.Context, sessionID snowflake.ID) error
}

type SignupRequest struct {
	Email       string              `json:"email"`
	Password    string              `json:"password"`
	DisplayName string              `json:"display_name"`
	Phone       string              `json:"phone"`
	Role        identitydomain.Role `json:"role"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

type LoginResult struct {
	Session   *SessionView
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
