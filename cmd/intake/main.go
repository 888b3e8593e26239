package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/balajigroup/customer-intake/cmd/intake/api"
	"github.com/balajigroup/customer-intake/controllers"
	"github.com/balajigroup/customer-intake/database/models"
	"github.com/balajigroup/customer-intake/database/repositories"
	"github.com/balajigroup/customer-intake/router"
	"github.com/balajigroup/customer-intake/services"
	"github.com/balajigroup/customer-intake/shared"
	"go.uber.org/fx"
)

var release string // Will be filled at build time

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, err := shared.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error()) // print detailed error message to stdout
		panic(errors.New("failed to setup database connection"))
	}

	disableAutoMigrate := os.Getenv("DISABLE_AUTOMIGRATE")
	if disableAutoMigrate != "true" {
		slog.Info("running database migrations...")
		if err := db.AutoMigrate(&models.Company{}, &models.Contact{}, &models.CardImage{}); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db),
		fx.Provide(api.NewServer),
		api.Module,
		repositories.Module,
		services.ServiceModule,
		controllers.ControllerModule,
		router.RouterModule,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(companyRouter router.CompanyRouter) {}),
		fx.Invoke(func(server api.Server) {}),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		Debug: environment == "dev",

		AttachStacktrace: true,

		// no personally identifiable information is sent by default
		SendDefaultPII: false,
	})
	if err != nil {
		slog.Error("failed to init error tracking", "err", err)
	}
}
