package repositories

import (
	"github.com/balajigroup/customer-intake/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewCompanyRepository, fx.As(new(shared.CompanyRepository)))),
)
