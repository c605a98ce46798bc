package chart

import (
	"time"

	"github.com/bitmark-inc/covid-tracker/schema"
)

// Daily plots the value picked from every point of s.
func Daily(name string, s schema.Series, pick func(schema.SeriesPoint) int) Line {
	l := Line{
		Name:   name,
		Dates:  make([]time.Time, 0, len(s)),
		Values: make([]float64, 0, len(s)),
	}
	for _, p := range s {
		l.Dates = append(l.Dates, p.Date)
		l.Values = append(l.Values, float64(pick(p)))
	}
	return l
}

// Rolling plots the rolling value picked from s, skipping points without one.
func Rolling(name string, s schema.Series, pick func(schema.SeriesPoint) *int) Line {
	l := Line{
		Name:   name,
		Dates:  make([]time.Time, 0, len(s)),
		Values: make([]float64, 0, len(s)),
	}
	for _, p := range s {
		v := pick(p)
		if v == nil {
			continue
		}
		l.Dates = append(l.Dates, p.Date)
		l.Values = append(l.Values, float64(*v))
	}
	return l
}

func Cases(p schema.SeriesPoint) int { return p.Cases }
func Deaths(p schema.SeriesPoint) int { return p.Deaths }
func CumulativeCases(p schema.SeriesPoint) int { return p.CumulativeCases }
func CumulativeDeaths(p schema.SeriesPoint) int { return p.CumulativeDeaths }
func RollingCases(p schema.SeriesPoint) *int { return p.RollingCases }
func RollingDeaths(p schema.SeriesPoint) *int { return p.RollingDeaths }
