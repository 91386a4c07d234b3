package services

import (
	"context"
	"weatherd/internal/models"
	"weatherd/internal/openweather/interfaces"
)

// WeatherRepositoryInterface is the seam between the screen state and the
// provider client. Errors pass through untouched.
type WeatherRepositoryInterface interface {
	GetCurrentWeather(ctx context.Context, city string) (*models.CurrentWeatherResponse, error)
	GetFiveDayForecast(ctx context.Context, city string) (*models.ForecastResponse, error)
}

type WeatherRepository struct {
	client interfaces.ClientInterface
}

func (wr *WeatherRepository) GetCurrentWeather(ctx context.Context, city string) (*models.CurrentWeatherResponse, error) {
	return wr.client.GetCurrentWeather(ctx, city)
}

func (wr *WeatherRepository) GetFiveDayForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	return wr.client.GetFiveDayForecast(ctx, city)
}

func NewWeatherRepository(client interfaces.ClientInterface) WeatherRepositoryInterface {
	return &WeatherRepository{client: client}
}
