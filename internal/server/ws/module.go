package ws

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// Module wires the websocket hub and its shutdown hook.
var Module = fx.Options(
	fx.Provide(func(logger *slog.Logger) *Hub { return NewHub(logger) }),
	fx.Invoke(func(lc fx.Lifecycle, hub *Hub) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				hub.Close()
				return nil
			},
		})
	}),
)
