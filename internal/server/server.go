package server

import (
	"context"
	"net/http"
	"time"

	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	authdomain "github.com/LangoJordan/annonceluzy/internal/auth/domain"
	"github.com/LangoJordan/annonceluzy/internal/auth/session"
	"github.com/LangoJordan/annonceluzy/internal/config"
	"github.com/LangoJordan/annonceluzy/internal/gate"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	listingdomain "github.com/LangoJordan/annonceluzy/internal/listing/domain"
	"github.com/LangoJordan/annonceluzy/internal/observability"
	"github.com/LangoJordan/annonceluzy/internal/ratelimit"
	subscriptiondomain "github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	genID           *snowflake.Node
	authsvc         authdomain.Service
	sessions        *session.Manager
	users           identitydomain.Repository
	agencySvc       agencydomain.Service
	positions       agencydomain.PositionStore
	subscriptionSvc subscriptiondomain.Service
	listings        listingdomain.Repository
	statusGate      *gate.StatusGate
	resolver        *gate.Resolver
	subGate         *gate.SubscriptionGate
	loginLimiter    *ratelimit.LoginLimiter
	metrics         *observability.HTTPMetrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	GenID           *snowflake.Node
	Authsvc         authdomain.Service
	Sessions        *session.Manager
	Users           identitydomain.Repository
	AgencySvc       agencydomain.Service
	Positions       agencydomain.PositionStore
	SubscriptionSvc subscriptiondomain.Service
	Listings        listingdomain.Repository
	StatusGate      *gate.StatusGate
	Resolver        *gate.Resolver
	SubGate         *gate.SubscriptionGate
	LoginLimiter    *ratelimit.LoginLimiter
	Metrics         *observability.HTTPMetrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http"),
		genID:           p.GenID,
		authsvc:         p.Authsvc,
		sessions:        p.Sessions,
		users:           p.Users,
		agencySvc:       p.AgencySvc,
		positions:       p.Positions,
		subscriptionSvc: p.SubscriptionSvc,
		listings:        p.Listings,
		statusGate:      p.StatusGate,
		resolver:        p.Resolver,
		subGate:         p.SubGate,
		loginLimiter:    p.LoginLimiter,
		metrics:         p.Metrics,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAuthRoutes()
	s.RegisterAppRoutes()
	s.RegisterAdminRoutes()
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
}

// RegisterAppRoutes wires the authenticated surface. Every route passes the
// status gate; tenant-scoped routes run the full chain in order: route name
// tag, role gate, agency context resolution, subscription gate. Role gates
// run before tenant resolution so a role denial never leaks tenant state.
// The selection endpoints deliberately sit outside the resolver so a user
// without a valid selection can still reach them.
func (s *Server) RegisterAppRoutes() {
	authed := s.engine.Group("/")
	authed.Use(s.AuthRequired(), s.StatusGate())

	authed.GET("/select-agency", s.RouteName("select-agency.show"), s.ShowSelectAgency)
	authed.POST("/select-agency", s.RouteName("select-agency.store"), s.SelectAgency)
	authed.DELETE("/select-agency", s.RouteName("select-agency.clear"), s.ClearSelection)

	authed.GET("/profile", s.tenantChain("profile.edit", s.ProfileEdit)...)
	authed.PUT("/profile", s.tenantChain("profile.update", s.ProfileUpdate)...)

	authed.GET("/listings", s.tenantChain("listing.index", s.ListListings)...)
	authed.POST("/listings", s.tenantChain("listing.store", s.CreateListing,
		identitydomain.RoleAgency, identitydomain.RoleEmployee)...)

	authed.GET("/subscription", s.tenantChain("subscription.index", s.SubscriptionIndex,
		identitydomain.RoleAgency)...)
	authed.GET("/subscription/renew", s.tenantChain("subscription.renew", s.SubscriptionRenew,
		identitydomain.RoleAgency)...)
	authed.POST("/subscription", s.tenantChain("subscription.store", s.SubscriptionStore,
		identitydomain.RoleAgency)...)
}

// tenantChain builds the per-route middleware chain for tenant-scoped
// routes. The route name must be tagged before the subscription gate runs,
// otherwise exempt routes would not be recognized.
func (s *Server) tenantChain(name string, handler gin.HandlerFunc, roles ...identitydomain.Role) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{s.RouteName(name)}
	if len(roles) > 0 {
		chain = append(chain, s.RequireRole(roles...))
	}
	return append(chain, s.ResolveAgencyContext(), s.SubscriptionGate(), handler)
}

func (s *Server) RegisterAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(
		s.AuthRequired(),
		s.StatusGate(),
		s.RequireRole(identitydomain.RoleAdmin, identitydomain.RoleManager),
	)

	admin.POST("/agencies", s.CreateAgency)
	admin.POST("/agencies/:agencyId/spaces", s.CreateSpace)
	admin.POST("/spaces/:spaceId/positions", s.GrantPosition)
	admin.DELETE("/spaces/:spaceId/positions/:userId", s.RevokePosition)
}

func run(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
