package subscription

import (
	"github.com/LangoJordan/annonceluzy/internal/subscription/repository"
	"github.com/LangoJordan/annonceluzy/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
