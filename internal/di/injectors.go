//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"weatherd/internal"
	"weatherd/internal/controllers"
	"weatherd/internal/openweather"
	"weatherd/internal/providers"
	"weatherd/internal/services"
	"weatherd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		openweather.NewClient,
		services.NewWeatherRepository,
		services.NewScreenStateService,
		controllers.NewWeatherController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
