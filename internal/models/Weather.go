package models

import "strings"

// WeatherCondition is one entry of the provider's "weather" array.
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentMain struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
	Pressure int     `json:"pressure"`
}

type Wind struct {
	Speed float64 `json:"speed"`
}

type Sys struct {
	Country string `json:"country"`
}

// CurrentWeatherResponse mirrors the body of GET /weather.
type CurrentWeatherResponse struct {
	Name    string             `json:"name"`
	Sys     Sys                `json:"sys"`
	Main    CurrentMain        `json:"main"`
	Wind    Wind               `json:"wind"`
	Weather []WeatherCondition `json:"weather"`
}

// PrimaryCondition returns the first condition, or a zero value when the
// provider sent none.
func (c *CurrentWeatherResponse) PrimaryCondition() WeatherCondition {
	if len(c.Weather) == 0 {
		return WeatherCondition{}
	}
	return c.Weather[0]
}

type ForecastMain struct {
	TempMin float64 `json:"temp_min"`
	TempMax float64 `json:"temp_max"`
}

// ForecastSample is one 3-hour slot of GET /forecast.
type ForecastSample struct {
	Dt      int64              `json:"dt"`
	DtTxt   string             `json:"dt_txt"`
	Main    ForecastMain       `json:"main"`
	Weather []WeatherCondition `json:"weather"`
}

// DateKey is the date part of dt_txt, i.e. everything before the first
// space. The provider emits "2006-01-02 15:04:05" in UTC; if that format
// ever changes this key silently stops meaning "calendar day".
func (s ForecastSample) DateKey() string {
	date, _, _ := strings.Cut(s.DtTxt, " ")
	return date
}

func (s ForecastSample) PrimaryCondition() WeatherCondition {
	if len(s.Weather) == 0 {
		return WeatherCondition{}
	}
	return s.Weather[0]
}

// ForecastResponse mirrors the body of GET /forecast.
type ForecastResponse struct {
	List []ForecastSample `json:"list"`
}
