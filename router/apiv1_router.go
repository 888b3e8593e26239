package router

import (
	"github.com/balajigroup/customer-intake/cmd/intake/api"
	"github.com/labstack/echo/v4"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv api.Server) APIV1Router {
	// liveness probe lives on the root instance, outside the api prefix
	srv.Echo.GET("/health", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	return APIV1Router{Group: srv.Echo.Group("/api/v1")}
}
