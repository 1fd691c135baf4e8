package listing

import (
	"github.com/LangoJordan/annonceluzy/internal/listing/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("listing",
	fx.Provide(repository.New),
)
