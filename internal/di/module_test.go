package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/freshfold/freshfold/internal/adapter/push"
	"github.com/freshfold/freshfold/internal/app"
	"github.com/freshfold/freshfold/internal/config"
	"github.com/freshfold/freshfold/internal/domain/repository"
	"github.com/freshfold/freshfold/internal/storage/postgres"
	"github.com/freshfold/freshfold/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		PushGatewayAddress: "https://exp.host/--/api/v2/push",
		JWTSecret:          "secret",
		NotifyPollInterval: time.Millisecond,
		WorkerPoolSize:     1,
		ShutdownTimeout:    time.Millisecond,
		NotifyBatchSize:    1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := test.NewOrderRepositoryStub()
	addressRepo := test.NewAddressRepositoryStub()
	notificationRepo := &test.NotificationRepositoryStub{}
	pushStub := &test.PushClientStub{}

	var facade *app.LaundryFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.AddressRepository(addressRepo)),
			fx.Replace(repository.NotificationRepository(notificationRepo)),
			fx.Replace(push.Client(pushStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected laundry facade instance")
	}
}
