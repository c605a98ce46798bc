package schema

import "time"

// SeriesPoint is one date of a world or region series. Rolling values are
// nil until the rolling window is filled.
type SeriesPoint struct {
	Date             time.Time `json:"date"`
	Cases            int       `json:"cases"`
	Deaths           int       `json:"deaths"`
	CumulativeCases  int       `json:"cumulative_cases"`
	CumulativeDeaths int       `json:"cumulative_deaths"`
	RollingCases     *int      `json:"rolling_cases"`
	RollingDeaths    *int      `json:"rolling_deaths"`
}

// Series is a date-ordered sequence with one point per date.
type Series []SeriesPoint

// Since returns the points dated on or after t. The receiver is not modified.
func (s Series) Since(t time.Time) Series {
	result := make(Series, 0, len(s))
	for _, p := range s {
		if !p.Date.Before(t) {
			result = append(result, p)
		}
	}
	return result
}

// Dates returns the dates of every point.
func (s Series) Dates() []time.Time {
	dates := make([]time.Time, len(s))
	for i, p := range s {
		dates[i] = p.Date
	}
	return dates
}

// Last returns the latest point, false if the series is empty.
func (s Series) Last() (SeriesPoint, bool) {
	if len(s) == 0 {
		return SeriesPoint{}, false
	}
	return s[len(s)-1], true
}

// Clone returns a deep copy of s, rolling values included.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}

	result := make(Series, len(s))
	for i, p := range s {
		if p.RollingCases != nil {
			v := *p.RollingCases
			p.RollingCases = &v
		}
		if p.RollingDeaths != nil {
			v := *p.RollingDeaths
			p.RollingDeaths = &v
		}
		result[i] = p
	}
	return result
}
