package interfaces

import (
	"context"
	"weatherd/internal/models"
)

type ClientInterface interface {
	GetCurrentWeather(ctx context.Context, city string) (*models.CurrentWeatherResponse, error)
	GetFiveDayForecast(ctx context.Context, city string) (*models.ForecastResponse, error)
}
