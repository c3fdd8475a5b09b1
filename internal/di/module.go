package di

import (
	"go.uber.org/fx"

	"github.com/freshfold/freshfold/internal/adapter/push"
	"github.com/freshfold/freshfold/internal/app"
	"github.com/freshfold/freshfold/internal/config"
	"github.com/freshfold/freshfold/internal/logger"
	"github.com/freshfold/freshfold/internal/pkg/auth"
	"github.com/freshfold/freshfold/internal/server/http/handlers"
	"github.com/freshfold/freshfold/internal/server/http/router"
	"github.com/freshfold/freshfold/internal/server/ws"
	"github.com/freshfold/freshfold/internal/storage/postgres"
	"github.com/freshfold/freshfold/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		push.Module,
		ws.Module,
		usecase.Module,
		fx.Provide(func(f *app.LaundryFacade) handlers.LaundryFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
