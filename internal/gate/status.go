package gate

import (
	"context"
	"errors"
	"net/http"

	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
)

// AdminDirectory looks up the administrative contact surfaced on denials.
type AdminDirectory interface {
	FindFirstActiveAdmin(ctx context.Context) (*identitydomain.User, error)
}

// StatusDenial is the rendered payload for a blocked or pending account.
type StatusDenial struct {
	Status            int                          `json:"status"`
	StatusCode        int16                        `json:"statusCode"`
	StatusDescription string                       `json:"statusDescription"`
	Admin             *identitydomain.AdminContact `json:"admin"`
}

// StatusGate blocks non-active accounts before any other stage runs.
type StatusGate struct {
	admins AdminDirectory
}

func NewStatusGate(admins AdminDirectory) *StatusGate {
	return &StatusGate{admins: admins}
}

// Check allows active principals through and denies everyone else with a
// descriptive payload. Unknown status values are never treated as active.
// The only side effect is the read-only contact lookup.
func (g *StatusGate) Check(ctx context.Context, principal *identitydomain.User) (Decision, error) {
	if principal == nil {
		return Allow(), nil
	}
	if principal.Status == identitydomain.StatusActive {
		return Allow(), nil
	}

	contact, err := g.contactAdmin(ctx)
	if err != nil {
		return Decision{}, err
	}

	return Deny(http.StatusForbidden, StatusDenial{
		Status:            http.StatusForbidden,
		StatusCode:        int16(principal.Status),
		StatusDescription: principal.Status.Description(),
		Admin:             contact,
	}), nil
}

func (g *StatusGate) contactAdmin(ctx context.Context) (*identitydomain.AdminContact, error) {
	admin, err := g.admins.FindFirstActiveAdmin(ctx)
	if err != nil {
		if errors.Is(err, identitydomain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identitydomain.AdminContact{
		Name:  admin.DisplayName,
		Email: admin.Email,
		Phone: admin.Phone,
	}, nil
}
