package stats

import (
	"math"

	"github.com/bitmark-inc/covid-tracker/schema"
)

// DefaultWindow is the number of days of a rolling average.
const DefaultWindow = 7

// CumulativeSum returns the running total of values.
func CumulativeSum(values []int) []int {
	result := make([]int, len(values))
	total := 0
	for i, v := range values {
		total += v
		result[i] = total
	}
	return result
}

// RollingMean returns the trailing mean of the last window values inclusive of
// the current one, rounded to the nearest integer with ties to even. Positions
// without a full window are nil.
func RollingMean(values []int, window int) []*int {
	result := make([]*int, len(values))
	if window <= 0 {
		return result
	}

	sum := 0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i < window-1 {
			continue
		}

		mean := int(math.RoundToEven(float64(sum) / float64(window)))
		result[i] = &mean
	}
	return result
}

// Build derives cumulative and rolling values of a date ordered count sequence.
func Build(counts []schema.DailyCount, window int) schema.Series {
	cases := make([]int, len(counts))
	deaths := make([]int, len(counts))
	for i, c := range counts {
		cases[i] = c.Cases
		deaths[i] = c.Deaths
	}

	cumulativeCases := CumulativeSum(cases)
	cumulativeDeaths := CumulativeSum(deaths)
	rollingCases := RollingMean(cases, window)
	rollingDeaths := RollingMean(deaths, window)

	series := make(schema.Series, len(counts))
	for i, c := range counts {
		series[i] = schema.SeriesPoint{
			Date:             c.Date,
			Cases:            c.Cases,
			Deaths:           c.Deaths,
			CumulativeCases:  cumulativeCases[i],
			CumulativeDeaths: cumulativeDeaths[i],
			RollingCases:     rollingCases[i],
			RollingDeaths:    rollingDeaths[i],
		}
	}
	return series
}
