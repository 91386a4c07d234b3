package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenState_Constructors(t *testing.T) {
	assert.Equal(t, ScreenState{Phase: PhaseInitial}, InitialState())
	assert.Equal(t, ScreenState{Phase: PhaseLoading, Sequence: 3}, LoadingState(3))
	assert.Equal(t, ScreenState{Phase: PhaseError, Sequence: 4, Message: "boom"}, ErrorState(4, "boom"))

	current := &CurrentWeatherResponse{Name: "Oslo"}
	daily := []DailyForecast{{Date: "2024-01-01"}}
	s := SuccessState(5, current, daily)
	assert.Equal(t, PhaseSuccess, s.Phase)
	assert.Equal(t, uint64(5), s.Sequence)
	assert.Same(t, current, s.Current)
	assert.Equal(t, daily, s.Daily)
	assert.Empty(t, s.Message)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "initial", PhaseInitial.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "success", PhaseSuccess.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestPrimaryCondition(t *testing.T) {
	c := &CurrentWeatherResponse{}
	assert.Equal(t, WeatherCondition{}, c.PrimaryCondition())

	c.Weather = []WeatherCondition{{Description: "rain", Icon: "10d"}, {Description: "mist", Icon: "50d"}}
	assert.Equal(t, "rain", c.PrimaryCondition().Description)

	s := ForecastSample{}
	assert.Equal(t, WeatherCondition{}, s.PrimaryCondition())
}
