package gate

import (
	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	"github.com/LangoJordan/annonceluzy/internal/clock"
	"github.com/LangoJordan/annonceluzy/internal/config"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	subscriptiondomain "github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newStatusGate(users identitydomain.Repository) *StatusGate {
	return NewStatusGate(users)
}

func newResolver(log *zap.Logger, positions agencydomain.PositionStore) *Resolver {
	return NewResolver(log, positions)
}

func newSubscriptionGate(subscriptions subscriptiondomain.Repository, clk clock.Clock, cfg config.Config) *SubscriptionGate {
	return NewSubscriptionGate(subscriptions, clk, cfg.Gating.ExemptRoutes)
}

var Module = fx.Module("gate",
	fx.Provide(newStatusGate),
	fx.Provide(newResolver),
	fx.Provide(newSubscriptionGate),
)
