package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sort"

	"github.com/balajigroup/customer-intake/internal/echohttp"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type Server struct {
	Echo *echo.Echo
}

// NewServer builds the echo instance and ties its lifetime to the fx
// lifecycle. Routes are registered by the router constructors before the
// OnStart hook fires.
func NewServer(lc fx.Lifecycle) Server {
	e := echohttp.Server()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}

			routes := e.Routes()
			sort.Slice(routes, func(i, j int) bool {
				return routes[i].Path < routes[j].Path
			})
			for _, route := range routes {
				if route.Method != "echo_route_not_found" {
					slog.Info(route.Path, "method", route.Method)
				}
			}

			go func() {
				if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("failed to start server", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})

	return Server{Echo: e}
}
