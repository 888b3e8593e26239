package router

import (
	"github.com/balajigroup/customer-intake/controllers"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CompanyRouter struct {
	*echo.Group
}

func NewCompanyRouter(
	apiV1 APIV1Router,
	companyController *controllers.CompanyController,
) CompanyRouter {
	// the submission route carries card image uploads, so it gets a
	// generous body limit instead of the server default
	companyRouter := apiV1.Group.Group("/customer-details")
	companyRouter.POST("/", companyController.Create, middleware.BodyLimit("50M"))
	companyRouter.GET("/", companyController.List)
	companyRouter.GET("/csv/", companyController.ExportCSV)
	companyRouter.GET("/pdf/", companyController.ExportPDF)

	return CompanyRouter{Group: companyRouter}
}
