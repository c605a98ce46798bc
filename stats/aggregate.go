package stats

import (
	"sort"
	"time"

	"github.com/bitmark-inc/covid-tracker/schema"
)

// AggregateWorld sums cases and deaths of all regions per date, dropping
// records dated before from. Result is sorted by date.
func AggregateWorld(records []schema.CaseRecord, from time.Time) []schema.DailyCount {
	return aggregate(records, from, func(schema.CaseRecord) bool { return true })
}

// AggregateRegion is AggregateWorld restricted to a single region. Duplicate
// rows of the same date are summed.
func AggregateRegion(records []schema.CaseRecord, region string, from time.Time) []schema.DailyCount {
	return aggregate(records, from, func(r schema.CaseRecord) bool { return r.Region == region })
}

func aggregate(records []schema.CaseRecord, from time.Time, keep func(schema.CaseRecord) bool) []schema.DailyCount {
	dateMapping := make(map[time.Time]*schema.DailyCount)
	for _, r := range records {
		if r.Date.Before(from) || !keep(r) {
			continue
		}

		d := schema.Day(r.Date)
		count, ok := dateMapping[d]
		if !ok {
			count = &schema.DailyCount{Date: d}
			dateMapping[d] = count
		}
		count.Cases += r.Cases
		count.Deaths += r.Deaths
	}

	result := make([]schema.DailyCount, 0, len(dateMapping))
	for _, count := range dateMapping {
		result = append(result, *count)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

// Since returns the records dated on or after from.
func Since(records []schema.CaseRecord, from time.Time) []schema.CaseRecord {
	result := make([]schema.CaseRecord, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(from) {
			result = append(result, r)
		}
	}
	return result
}

// Regions returns the distinct region identifiers in order of first appearance.
func Regions(records []schema.CaseRecord) []string {
	seen := make(map[string]struct{})
	regions := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		regions = append(regions, r.Region)
	}
	return regions
}
