package identity

import (
	"github.com/LangoJordan/annonceluzy/internal/identity/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("identity",
	fx.Provide(repository.New),
)
