package models

import "sort"

// DailyForecast is the sample chosen to represent one calendar day.
type DailyForecast struct {
	Date string
	ForecastSample
}

// AggregateToDaily picks, for every date key, the sample with the highest
// TempMax. On a tie the sample seen first wins. The result is ordered by Dt.
func AggregateToDaily(samples []ForecastSample) []DailyForecast {
	daily := make([]DailyForecast, 0, len(samples)/8+1)
	index := make(map[string]int)

	for _, sample := range samples {
		key := sample.DateKey()
		i, ok := index[key]
		if !ok {
			index[key] = len(daily)
			daily = append(daily, DailyForecast{Date: key, ForecastSample: sample})
			continue
		}
		if sample.Main.TempMax > daily[i].Main.TempMax {
			daily[i].ForecastSample = sample
		}
	}

	sort.SliceStable(daily, func(a, b int) bool {
		return daily[a].Dt < daily[b].Dt
	})
	return daily
}
