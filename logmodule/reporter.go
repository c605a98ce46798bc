package logmodule

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

type capabilities struct{}

func (capabilities) Reporting() bool { return true }
func (capabilities) Tagging() bool   { return true }

// StatsReporter writes tally metrics to a logrus entry. Counters and gauges
// are logged on every report interval, timers and histograms as they are
// recorded.
type StatsReporter struct {
	log *logrus.Entry
}

// NewStatsReporter - new tally reporter logging through log
func NewStatsReporter(log *logrus.Entry) tally.StatsReporter {
	return &StatsReporter{log: log}
}

func (r *StatsReporter) entry(name string, tags map[string]string) *logrus.Entry {
	fields := logrus.Fields{"metric": name}
	for k, v := range tags {
		fields["tag_"+k] = v
	}
	return r.log.WithFields(fields)
}

func (r *StatsReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.entry(name, tags).WithField("value", value).Info("counter")
}

func (r *StatsReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.entry(name, tags).WithField("value", value).Info("gauge")
}

func (r *StatsReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.entry(name, tags).WithField("duration", interval.String()).Debug("timer")
}

func (r *StatsReporter) ReportHistogramValueSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound float64,
	samples int64,
) {
	r.entry(name, tags).WithFields(logrus.Fields{
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Debug("histogram")
}

func (r *StatsReporter) ReportHistogramDurationSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound time.Duration,
	samples int64,
) {
	r.entry(name, tags).WithFields(logrus.Fields{
		"lower":   bucketLowerBound.String(),
		"upper":   bucketUpperBound.String(),
		"samples": samples,
	}).Debug("histogram")
}

func (r *StatsReporter) Capabilities() tally.Capabilities {
	return capabilities{}
}

func (r *StatsReporter) Flush() {}
