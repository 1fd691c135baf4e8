package auth

import (
	"github.com/LangoJordan/annonceluzy/internal/auth/repository"
	"github.com/LangoJordan/annonceluzy/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
