package push

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/freshfold/freshfold/internal/config"
)

// Module exposes push client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PushGatewayAddress, p.Logger)
}
