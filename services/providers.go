package services

import (
	"go.uber.org/fx"
)

// ServiceModule provides all service constructors
var ServiceModule = fx.Options(
	fx.Provide(NewSubmissionService),
	fx.Provide(NewExportService),
)
