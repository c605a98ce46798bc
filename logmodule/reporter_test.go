package logmodule

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestStatsReporterCounter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewStatsReporter(logger.WithField("prefix", "metrics"))

	assert.True(t, r.Capabilities().Reporting())
	assert.True(t, r.Capabilities().Tagging())

	r.ReportCounter("covid.dataset_load", map[string]string{"result": "success"}, 2)
	r.Flush()

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "counter", entry.Message)
		assert.Equal(t, "covid.dataset_load", entry.Data["metric"])
		assert.Equal(t, "success", entry.Data["tag_result"])
		assert.Equal(t, int64(2), entry.Data["value"])
		assert.Equal(t, "metrics", entry.Data["prefix"])
	}
}

func TestStatsReporterTimer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	r := NewStatsReporter(logrus.NewEntry(logger))

	r.ReportTimer("covid.recompute_latency", nil, 3*time.Millisecond)

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		assert.Equal(t, "3ms", entry.Data["duration"])
	}
}
