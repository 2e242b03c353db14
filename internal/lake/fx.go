package lake

import (
	"go.uber.org/fx"
)

var Module = fx.Module("lake",
	fx.Provide(New),
)
