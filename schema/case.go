package schema

import "time"

// CaseRecord is one row of the daily case/death report of a region.
type CaseRecord struct {
	Date   time.Time `json:"date"`
	Region string    `json:"region"`
	GeoID  string    `json:"geo_id,omitempty"`
	Cases  int       `json:"cases"`
	Deaths int       `json:"deaths"`
}

// DailyCount is the sum of case records of a single date.
type DailyCount struct {
	Date   time.Time `json:"date"`
	Cases  int       `json:"cases"`
	Deaths int       `json:"deaths"`
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
