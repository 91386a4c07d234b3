package internal

import (
	"net/http"
	"weatherd/internal/controllers"
	"weatherd/internal/providers"
	"weatherd/internal/structures"
)

func InitRoutes(weatherController *controllers.WeatherController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/query", http.HandlerFunc(weatherController.SubmitQuery))
	routers.Get("/state", http.HandlerFunc(weatherController.GetState))
	return routers
}
