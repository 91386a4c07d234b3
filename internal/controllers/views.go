package controllers

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
	"weatherd/internal/models"
)

const (
	iconURLFormat  = "https://openweathermap.org/img/wn/%s@%dx.png"
	dayLabelLayout = "Mon, Jan 2"
)

type currentView struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	IconURL     string  `json:"icon_url,omitempty"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
}

type dailyView struct {
	Date    string `json:"date"`
	Day     string `json:"day"`
	IconURL string `json:"icon_url,omitempty"`
	TempMax int    `json:"temp_max"`
	TempMin int    `json:"temp_min"`
}

type stateView struct {
	Phase    string       `json:"phase"`
	Sequence uint64       `json:"sequence"`
	Message  string       `json:"message,omitempty"`
	Current  *currentView `json:"current,omitempty"`
	// Daily is set, possibly to an empty list, only on success.
	Daily *[]dailyView `json:"daily,omitempty"`
}

func renderState(state models.ScreenState, loc *time.Location) stateView {
	view := stateView{Phase: state.Phase.String(), Sequence: state.Sequence}

	switch state.Phase {
	case models.PhaseInitial, models.PhaseLoading:
	case models.PhaseError:
		view.Message = state.Message
	case models.PhaseSuccess:
		view.Current = renderCurrent(state.Current)
		daily := make([]dailyView, 0, len(state.Daily))
		for _, day := range state.Daily {
			daily = append(daily, renderDay(day, loc))
		}
		view.Daily = &daily
	}
	return view
}

func renderCurrent(c *models.CurrentWeatherResponse) *currentView {
	if c == nil {
		return nil
	}
	cond := c.PrimaryCondition()
	return &currentView{
		Location:    location(c.Name, c.Sys.Country),
		Temperature: c.Main.Temp,
		Description: capitalize(cond.Description),
		IconURL:     iconURL(cond.Icon, 4),
		WindSpeed:   c.Wind.Speed,
		Humidity:    c.Main.Humidity,
		Pressure:    c.Main.Pressure,
	}
}

func renderDay(d models.DailyForecast, loc *time.Location) dailyView {
	return dailyView{
		Date:    d.Date,
		Day:     time.Unix(d.Dt, 0).In(loc).Format(dayLabelLayout),
		IconURL: iconURL(d.PrimaryCondition().Icon, 2),
		TempMax: int(d.Main.TempMax),
		TempMin: int(d.Main.TempMin),
	}
}

// location joins the non-empty parts of "Name, Country".
func location(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func iconURL(icon string, scale int) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, icon, scale)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}
