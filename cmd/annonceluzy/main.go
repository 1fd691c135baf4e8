package main

import (
	"github.com/LangoJordan/annonceluzy/internal/agency"
	"github.com/LangoJordan/annonceluzy/internal/auth"
	"github.com/LangoJordan/annonceluzy/internal/auth/session"
	"github.com/LangoJordan/annonceluzy/internal/clock"
	"github.com/LangoJordan/annonceluzy/internal/config"
	"github.com/LangoJordan/annonceluzy/internal/gate"
	"github.com/LangoJordan/annonceluzy/internal/identity"
	"github.com/LangoJordan/annonceluzy/internal/listing"
	"github.com/LangoJordan/annonceluzy/internal/logger"
	"github.com/LangoJordan/annonceluzy/internal/migration"
	"github.com/LangoJordan/annonceluzy/internal/observability"
	"github.com/LangoJordan/annonceluzy/internal/ratelimit"
	"github.com/LangoJordan/annonceluzy/internal/server"
	"github.com/LangoJordan/annonceluzy/internal/subscription"
	"github.com/LangoJordan/annonceluzy/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// functional domains
		identity.Module,
		auth.Module,
		session.Module,
		agency.Module,
		subscription.Module,
		listing.Module,
		gate.Module,
		ratelimit.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
