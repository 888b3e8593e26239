package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/balajigroup/customer-intake/cmd/intake/api"
	"github.com/balajigroup/customer-intake/router"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHealthRouteServedAtRoot(t *testing.T) {
	srv := api.Server{Echo: echo.New()}
	router.NewAPIV1Router(srv)

	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	// the probe must not live under the api prefix
	rec = httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
