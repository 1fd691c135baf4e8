package agency

import (
	"github.com/LangoJordan/annonceluzy/internal/agency/repository"
	"github.com/LangoJordan/annonceluzy/internal/agency/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agency",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
