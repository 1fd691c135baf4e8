package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	agencyrepository "github.com/LangoJordan/annonceluzy/internal/agency/repository"
	agencyservice "github.com/LangoJordan/annonceluzy/internal/agency/service"
	authdomain "github.com/LangoJordan/annonceluzy/internal/auth/domain"
	authrepository "github.com/LangoJordan/annonceluzy/internal/auth/repository"
	authservice "github.com/LangoJordan/annonceluzy/internal/auth/service"
	"github.com/LangoJordan/annonceluzy/internal/auth/session"
	"github.com/LangoJordan/annonceluzy/internal/clock"
	"github.com/LangoJordan/annonceluzy/internal/config"
	"github.com/LangoJordan/annonceluzy/internal/gate"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	identityrepository "github.com/LangoJordan/annonceluzy/internal/identity/repository"
	listingdomain "github.com/LangoJordan/annonceluzy/internal/listing/domain"
	listingrepository "github.com/LangoJordan/annonceluzy/internal/listing/repository"
	"github.com/LangoJordan/annonceluzy/internal/ratelimit"
	subscriptiondomain "github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	subscriptionrepository "github.com/LangoJordan/annonceluzy/internal/subscription/repository"
	subscriptionservice "github.com/LangoJordan/annonceluzy/internal/subscription/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	srv         *Server
	db          *gorm.DB
	node        *snowflake.Node
	clk         *clock.FakeClock
	authsvc     authdomain.Service
	users       identitydomain.Repository
	positions   agencydomain.PositionStore
	agencyRepo  agencydomain.Repository
	subsRepo    subscriptiondomain.Repository
	listingRepo listingdomain.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&identitydomain.User{},
		&authdomain.Session{},
		&agencydomain.Agency{},
		&agencydomain.Space{},
		&agencydomain.Position{},
		&subscriptiondomain.Subscription{},
		&listingdomain.Listing{},
	)
	assert.NoError(t, err)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	cfg := config.Config{
		HTTPAddr: ":0",
		Gating:   config.DefaultGatingConfig(),
	}

	users := identityrepository.New(db)
	sessionRepo := authrepository.New(db)
	authsvc := authservice.New(log, cfg, users, sessionRepo, clk, node)
	agencyRepo, positions := agencyrepository.New(db)
	agencySvc := agencyservice.New(log, agencyRepo, positions, node)
	subsRepo := subscriptionrepository.New(db)
	subsSvc := subscriptionservice.New(log, subsRepo, clk, node)
	listingRepo := listingrepository.New(db)

	srv := NewServer(ServerParams{
		Gin:             NewEngine(nil),
		Cfg:             cfg,
		Log:             log,
		GenID:           node,
		Authsvc:         authsvc,
		Sessions:        session.NewManager(cfg),
		Users:           users,
		AgencySvc:       agencySvc,
		Positions:       positions,
		SubscriptionSvc: subsSvc,
		Listings:        listingRepo,
		StatusGate:      gate.NewStatusGate(users),
		Resolver:        gate.NewResolver(log, positions),
		SubGate:         gate.NewSubscriptionGate(subsRepo, clk, cfg.Gating.ExemptRoutes),
		LoginLimiter:    ratelimit.NewLoginLimiter(cfg),
	})
	registerRoutes(srv)

	return &testEnv{
		srv:         srv,
		db:          db,
		node:        node,
		clk:         clk,
		authsvc:     authsvc,
		users:       users,
		positions:   positions,
		agencyRepo:  agencyRepo,
		subsRepo:    subsRepo,
		listingRepo: listingRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path, cookie string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	e.srv.Engine().ServeHTTP(w, req)
	return w
}

// signupUser creates an account through the service and returns its session
// token. Role and status changes are applied directly on the row.
func (e *testEnv) signupUser(t *testing.T, email string, role identitydomain.Role) (*identitydomain.User, string) {
	t.Helper()

	user, err := e.authsvc.Signup(context.Background(), authdomain.SignupRequest{
		Email:    email,
		Password: "correct-horse-battery",
		Role:     role,
	})
	assert.NoError(t, err)

	result, err := e.authsvc.Login(context.Background(), authdomain.LoginRequest{
		Email:    email,
		Password: "correct-horse-battery",
	})
	assert.NoError(t, err)

	return user, result.RawToken
}

func (e *testEnv) seedAgency(t *testing.T, ownerID snowflake.ID, subscribed bool) (*agencydomain.Agency, *agencydomain.Space) {
	t.Helper()
	ctx := context.Background()

	agency := &agencydomain.Agency{
		ID:          e.node.Generate(),
		Name:        "Agence Test",
		Slug:        fmt.Sprintf("agence-test-%d", e.node.Generate()),
		OwnerUserID: ownerID,
	}
	assert.NoError(t, e.agencyRepo.CreateAgency(ctx, agency))

	space := &agencydomain.Space{
		ID:       e.node.Generate(),
		AgencyID: agency.ID,
		Name:     "Bureau Centre",
	}
	assert.NoError(t, e.agencyRepo.CreateSpace(ctx, space))

	if subscribed {
		assert.NoError(t, e.subsRepo.Insert(ctx, &subscriptiondomain.Subscription{
			ID:       e.node.Generate(),
			AgencyID: agency.ID,
			Status:   true,
			StartAt:  e.clk.Now().Add(-time.Hour),
			EndAt:    e.clk.Now().Add(30 * 24 * time.Hour),
		}))
	}

	return agency, space
}

func (e *testEnv) grantPosition(t *testing.T, userID, spaceID snowflake.ID) {
	t.Helper()
	assert.NoError(t, e.positions.CreatePosition(context.Background(), &agencydomain.Position{
		ID:      e.node.Generate(),
		UserID:  userID,
		SpaceID: spaceID,
		Role:    agencydomain.PositionEmployee,
	}))
}

func TestSignup_AgencyAccountCreatesOwnedAgency(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"email":       "owner@agence.fr",
		"password":    "correct-horse-battery",
		"role":        "agency",
		"agency_name": "Agence du Centre",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	user, err := env.users.FindByEmail(context.Background(), "owner@agence.fr")
	assert.NoError(t, err)
	assert.Equal(t, identitydomain.RoleAgency, user.Role)

	agency, err := env.agencyRepo.FindAgencyByOwner(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Agence du Centre", agency.Name)
	if assert.NotNil(t, user.AgencyID) {
		assert.Equal(t, agency.ID, *user.AgencyID)
	}
}

func TestSignup_AgencyAccountRequiresAgencyName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"email":    "owner@agence.fr",
		"password": "correct-horse-battery",
		"role":     "agency",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_StaffRolesAreNotSelfServe(t *testing.T) {
	env := newTestEnv(t)

	for _, role := range []string{"admin", "manager", "employee", "owner"} {
		w := env.do(t, http.MethodPost, "/auth/signup", "", gin.H{
			"email":    role + "@annonceluzy.fr",
			"password": "correct-horse-battery",
			"role":     role,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, role)
	}
}

func TestPipeline_UnauthenticatedIsRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPipeline_BlockedAccountGetsStatusDenial(t *testing.T) {
	env := newTestEnv(t)

	user, token := env.signupUser(t, "blocked@example.lu", identitydomain.RoleVisitor)
	assert.NoError(t, env.db.Model(&identitydomain.User{}).
		Where("id = ?", user.ID).
		Update("status", identitydomain.StatusBlocked).Error)

	w := env.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var payload gate.StatusDenial
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, int16(identitydomain.StatusBlocked), payload.StatusCode)
	assert.Equal(t, "account blocked", payload.StatusDescription)
}

func TestPipeline_EmployeeWithoutSelectionRedirects(t *testing.T) {
	env := newTestEnv(t)

	owner, _ := env.signupUser(t, "owner@example.lu", identitydomain.RoleAgency)
	_, space := env.seedAgency(t, owner.ID, true)

	employee, token := env.signupUser(t, "emp@example.lu", identitydomain.RoleEmployee)
	env.grantPosition(t, employee.ID, space.ID)

	w := env.do(t, http.MethodGet, "/listings", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/select-agency", w.Header().Get("Location"))
}

func TestPipeline_SelectThenAccess(t *testing.T) {
	env := newTestEnv(t)

	owner, _ := env.signupUser(t, "owner@example.lu", identitydomain.RoleAgency)
	agency, space := env.seedAgency(t, owner.ID, true)

	employee, token := env.signupUser(t, "emp@example.lu", identitydomain.RoleEmployee)
	env.grantPosition(t, employee.ID, space.ID)

	// selection page lists the grant
	w := env.do(t, http.MethodGet, "/select-agency", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/select-agency", token, map[string]string{
		"agency_id": agency.ID.String(),
		"space_id":  space.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/listings", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPipeline_SelectingForeignAgencyIsForbidden(t *testing.T) {
	env := newTestEnv(t)

	owner, _ := env.signupUser(t, "owner@example.lu", identitydomain.RoleAgency)
	agency, space := env.seedAgency(t, owner.ID, true)

	outsider, token := env.signupUser(t, "outsider@example.lu", identitydomain.RoleVisitor)
	_ = outsider

	w := env.do(t, http.MethodPost, "/select-agency", token, map[string]string{
		"agency_id": agency.ID.String(),
		"space_id":  space.ID.String(),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPipeline_RevokedPositionSelfHeals(t *testing.T) {
	env := newTestEnv(t)

	owner, _ := env.signupUser(t, "owner@example.lu", identitydomain.RoleAgency)
	agency, space := env.seedAgency(t, owner.ID, true)

	employee, token := env.signupUser(t, "emp@example.lu", identitydomain.RoleEmployee)
	env.grantPosition(t, employee.ID, space.ID)

	w := env.do(t, http.MethodPost, "/select-agency", token, map[string]string{
		"agency_id": agency.ID.String(),
		"space_id":  space.ID.String(),
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// the grant disappears while the session still points at it
	assert.NoError(t, env.positions.DeletePosition(context.Background(), employee.ID, space.ID))

	// keep the user tenant-bound through another space so the resolver
	// reaches the selection check instead of the no-positions shortcut
	otherSpace := &agencydomain.Space{
		ID:       env.node.Generate(),
		AgencyID: agency.ID,
		Name:     "Bureau Gare",
	}
	assert.NoError(t, env.agencyRepo.CreateSpace(context.Background(), otherSpace))
	env.grantPosition(t, employee.ID, otherSpace.ID)

	w = env.do(t, http.MethodGet, "/listings", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/select-agency", w.Header().Get("Location"))

	// stale keys were cleared in storage, not just skipped
	var sess authdomain.Session
	assert.NoError(t, env.db.Where("user_id = ?", employee.ID).First(&sess).Error)
	assert.Nil(t, sess.SelectedAgencyID)
	assert.Nil(t, sess.SelectedSpaceID)
}

func TestPipeline_LapsedSubscriptionRedirectsToRenew(t *testing.T) {
	env := newTestEnv(t)

	owner, token := env.signupUser(t, "owner@example.lu", identitydomain.RoleAgency)
	agency, _ := env.seedAgency(t, owner.ID, false)
	assert.NoError(t, env.db.Model(&identitydomain.User{}).
		Where("id = ?", owner.ID).
		Update("agency_id", agency.ID).Error)

	w := env.do(t, http.MethodGet, "/listings", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/subscription/renew", w.Header().Get("Location"))

	// the renewal surface stays reachable
	w = env.do(t, http.MethodGet, "/subscription/renew", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/subscription", token, map[string]int{"months": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	// with a fresh window the gate opens
	w = env.do(t, http.MethodGet, "/listings", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPipeline_AdminBypassesTenantGates(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.signupUser(t, "admin@example.lu", identitydomain.RoleAdmin)

	w := env.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// no tenant, so the listing surface refuses rather than leaking data
	w = env.do(t, http.MethodGet, "/listings", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPipeline_RoleGateMessage(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.signupUser(t, "visitor@example.lu", identitydomain.RoleVisitor)

	w := env.do(t, http.MethodGet, "/admin/agencies", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "only POST is registered")

	w = env.do(t, http.MethodPost, "/admin/agencies", token, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var payload gate.ErrorPayload
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "error", payload.Status)
	assert.Equal(t, "Unauthorized. Admin, Manager access required.", payload.Message)
}

func TestPipeline_VisitorCannotCreateListing(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.signupUser(t, "visitor@example.lu", identitydomain.RoleVisitor)

	w := env.do(t, http.MethodPost, "/listings", token, map[string]any{
		"title": "Vieux vélo",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPipeline_AgencyOwnerCreatesListing(t *testing.T) {
	env := newTestEnv(t)

	owner, token := env.signupUser(t, "owner@example.lu", identitydomain.RoleAgency)
	agency, _ := env.seedAgency(t, owner.ID, true)
	assert.NoError(t, env.db.Model(&identitydomain.User{}).
		Where("id = ?", owner.ID).
		Update("agency_id", agency.ID).Error)

	w := env.do(t, http.MethodPost, "/listings", token, map[string]any{
		"title":       "Appartement 2 chambres",
		"price_cents": 125000000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var listing listingdomain.Listing
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, agency.ID, listing.AgencyID)
	assert.Equal(t, owner.ID, listing.AuthorID)
	assert.Nil(t, listing.SpaceID, "the owner acts agency-wide, not within one space")
}

func TestPipeline_LogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.signupUser(t, "anna@example.lu", identitydomain.RoleVisitor)

	w := env.do(t, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
