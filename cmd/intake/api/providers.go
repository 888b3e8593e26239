package api

import (
	"github.com/balajigroup/customer-intake/shared"
	"github.com/balajigroup/customer-intake/storage"
	"go.uber.org/fx"
)

// StorageModule provides the card image store backed by the configured
// object storage
var StorageModule = fx.Options(
	fx.Provide(fx.Annotate(storage.NewMinioCardStore, fx.As(new(shared.CardStore)))),
)

// Module combines all API-level FX modules
var Module = fx.Options(
	StorageModule,
)
