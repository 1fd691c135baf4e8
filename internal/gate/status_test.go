package gate

import (
	"context"
	"errors"
	"net/http"
	"testing"

	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	"github.com/stretchr/testify/assert"
)

type fakeAdminDirectory struct {
	admin *identitydomain.User
	err   error
	calls int
}

func (f *fakeAdminDirectory) FindFirstActiveAdmin(ctx context.Context) (*identitydomain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.admin, nil
}

func TestStatusGate_NoPrincipalPasses(t *testing.T) {
	g := NewStatusGate(&fakeAdminDirectory{})

	d, err := g.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.True(t, d.Allowed())
}

func TestStatusGate_ActivePasses(t *testing.T) {
	admins := &fakeAdminDirectory{}
	g := NewStatusGate(admins)

	d, err := g.Check(context.Background(), &identitydomain.User{Status: identitydomain.StatusActive})
	assert.NoError(t, err)
	assert.True(t, d.Allowed())
	assert.Zero(t, admins.calls, "active accounts must not trigger a contact lookup")
}

func TestStatusGate_PendingDeniedWithContact(t *testing.T) {
	admins := &fakeAdminDirectory{admin: &identitydomain.User{
		DisplayName: "Site Admin",
		Email:       "admin@example.lu",
		Phone:       "+352 123 456",
	}}
	g := NewStatusGate(admins)

	d, err := g.Check(context.Background(), &identitydomain.User{Status: identitydomain.StatusPending})
	assert.NoError(t, err)
	assert.Equal(t, KindDeny, d.Kind)
	assert.Equal(t, http.StatusForbidden, d.Code)

	payload, ok := d.Payload.(StatusDenial)
	assert.True(t, ok)
	assert.Equal(t, int16(identitydomain.StatusPending), payload.StatusCode)
	assert.Equal(t, "account under review", payload.StatusDescription)
	assert.NotNil(t, payload.Admin)
	assert.Equal(t, "admin@example.lu", payload.Admin.Email)
}

func TestStatusGate_BlockedDenied(t *testing.T) {
	g := NewStatusGate(&fakeAdminDirectory{})

	d, err := g.Check(context.Background(), &identitydomain.User{Status: identitydomain.StatusBlocked})
	assert.NoError(t, err)
	assert.Equal(t, KindDeny, d.Kind)

	payload := d.Payload.(StatusDenial)
	assert.Equal(t, "account blocked", payload.StatusDescription)
}

func TestStatusGate_UnknownStatusNeverActive(t *testing.T) {
	g := NewStatusGate(&fakeAdminDirectory{})

	d, err := g.Check(context.Background(), &identitydomain.User{Status: identitydomain.Status(99)})
	assert.NoError(t, err)
	assert.Equal(t, KindDeny, d.Kind)

	payload := d.Payload.(StatusDenial)
	assert.Equal(t, "access denied", payload.StatusDescription)
}

func TestStatusGate_NoAdminConfigured(t *testing.T) {
	g := NewStatusGate(&fakeAdminDirectory{err: identitydomain.ErrUserNotFound})

	d, err := g.Check(context.Background(), &identitydomain.User{Status: identitydomain.StatusBlocked})
	assert.NoError(t, err)
	assert.Equal(t, KindDeny, d.Kind)

	payload := d.Payload.(StatusDenial)
	assert.Nil(t, payload.Admin)
}

func TestStatusGate_LookupErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	g := NewStatusGate(&fakeAdminDirectory{err: boom})

	_, err := g.Check(context.Background(), &identitydomain.User{Status: identitydomain.StatusBlocked})
	assert.ErrorIs(t, err, boom)
}
