package pipeline

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/covid-tracker/schema"
	"github.com/bitmark-inc/covid-tracker/stats"
)

const logPrefix = "pipeline"

var ErrUnknownRegion = fmt.Errorf("unknown region")

// Config holds the date thresholds of the pipeline. Records before
// AggregateFrom are dropped; the display thresholds are applied after rolling
// averages are computed so the first displayed point has a full window.
type Config struct {
	AggregateFrom     time.Time
	WorldDisplayFrom  time.Time
	RegionDisplayFrom time.Time
	Window            int
}

// DefaultConfig returns the thresholds of the ECDC dashboard.
func DefaultConfig() Config {
	return Config{
		AggregateFrom:     time.Date(2020, time.February, 20, 0, 0, 0, 0, time.UTC),
		WorldDisplayFrom:  time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		RegionDisplayFrom: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		Window:            stats.DefaultWindow,
	}
}

// RegionView is the recomputed state of a selected region.
type RegionView struct {
	Region    string        `json:"region"`
	Series    schema.Series `json:"series"`
	Growth    *stats.Growth `json:"growth"`
	GrowthErr error         `json:"-"`
}

// Pipeline holds the dataset of a session. It is immutable after New and may
// be shared between requests.
type Pipeline struct {
	config  Config
	records []schema.CaseRecord
	world   schema.Series
	regions []string
	known   map[string]struct{}
	scope   tally.Scope
}

// New filters records by the aggregation threshold and computes the world series.
func New(records []schema.CaseRecord, config Config, scope tally.Scope) *Pipeline {
	if scope == nil {
		scope = tally.NoopScope
	}

	filtered := stats.Since(records, config.AggregateFrom)
	world := stats.Build(stats.AggregateWorld(filtered, config.AggregateFrom), config.Window).
		Since(config.WorldDisplayFrom)

	regions := stats.Regions(records)
	known := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		known[r] = struct{}{}
	}

	log.WithFields(log.Fields{
		"prefix":      logPrefix,
		"records":     len(records),
		"regions":     len(regions),
		"world_dates": len(world),
	}).Info("pipeline ready")

	return &Pipeline{
		config:  config,
		records: filtered,
		world:   world,
		regions: regions,
		known:   known,
		scope:   scope,
	}
}

// Config returns the thresholds the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.config
}

// World returns a copy of the displayed world series.
func (p *Pipeline) World() schema.Series {
	return p.world.Clone()
}

// Regions returns a copy of every region of the dataset in first appearance order.
func (p *Pipeline) Regions() []string {
	regions := make([]string, len(p.regions))
	copy(regions, p.regions)
	return regions
}

// HasRegion reports whether region appears in the dataset.
func (p *Pipeline) HasRegion(region string) bool {
	_, ok := p.known[region]
	return ok
}

// Recompute builds the displayed series and growth rates of a region.
func (p *Pipeline) Recompute(region string) (RegionView, error) {
	if !p.HasRegion(region) {
		return RegionView{}, ErrUnknownRegion
	}

	defer p.scope.Timer("recompute_latency").Start().Stop()
	p.scope.Counter("recompute").Inc(1)

	series := stats.Build(stats.AggregateRegion(p.records, region, p.config.AggregateFrom), p.config.Window).
		Since(p.config.RegionDisplayFrom)

	view := RegionView{
		Region: region,
		Series: series,
	}

	growth, err := stats.GrowthRate(series)
	if nil != err {
		p.scope.Counter("growth_insufficient").Inc(1)
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"region": region,
			"dates":  len(series),
		}).Debug("growth rate not computable")
		view.GrowthErr = err
		return view, nil
	}

	if !growth.Cases.Defined || !growth.Deaths.Defined {
		p.scope.Counter("growth_undefined").Inc(1)
	}
	view.Growth = &growth

	return view, nil
}
