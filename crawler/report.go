package main

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-tracker/chart"
	"github.com/bitmark-inc/covid-tracker/pipeline"
	"github.com/bitmark-inc/covid-tracker/utils"
)

type regionReport struct {
	pipeline *pipeline.Pipeline
	regions  []string
}

// Run logs the latest totals and growth of every selected region
func (r regionReport) Run() {
	regions := r.regions
	if len(regions) == 0 {
		regions = r.pipeline.Regions()
	}

	for _, region := range regions {
		view, err := r.pipeline.Recompute(region)
		if nil != err {
			log.WithFields(log.Fields{"prefix": logPrefix, "region": region, "error": err}).Error("recompute region")
			continue
		}

		fields := log.Fields{"prefix": logPrefix, "region": region}
		if last, ok := view.Series.Last(); ok {
			fields["date"] = last.Date.Format("2006-01-02")
			fields["cumulative_cases"] = last.CumulativeCases
			fields["cumulative_deaths"] = last.CumulativeDeaths
		}

		if nil != view.GrowthErr {
			fields["growth_error"] = view.GrowthErr
			log.WithFields(fields).Warn("region report")
			continue
		}

		fields["cases_growth"] = view.Growth.Cases.String()
		fields["deaths_growth"] = view.Growth.Deaths.String()
		log.WithFields(fields).Info("region report")
	}
}

// newRegionReport - new job logging the growth of regions, all regions when
// none is given
func newRegionReport(p *pipeline.Pipeline, regions []string) Cron {
	return &regionReport{
		pipeline: p,
		regions:  regions,
	}
}

type worldCharts struct {
	pipeline *pipeline.Pipeline
	dir      string
}

// Run writes the world charts as svg files into dir
func (w worldCharts) Run() {
	world := w.pipeline.World()
	loc := utils.NewLocalizer("en")
	t := func(id string) string { return utils.Translate(loc, id, nil) }

	deaths := chart.Daily(t("chart.deaths"), world, chart.CumulativeDeaths)
	deaths.Secondary = true

	specs := map[string]chart.Spec{
		"world-cumulative.svg": {
			Title:          t("chart.world_cumulated"),
			XName:          t("chart.date"),
			YName:          t("chart.cases"),
			YSecondaryName: t("chart.deaths"),
			Lines:          []chart.Line{chart.Daily(t("chart.cases"), world, chart.CumulativeCases), deaths},
		},
		"world-daily.svg": {
			Title: t("chart.world_new_cases"),
			XName: t("chart.date"),
			YName: t("chart.cases_per_day"),
			Lines: []chart.Line{
				chart.Daily(t("chart.cases_per_day"), world, chart.Cases),
				chart.Rolling(t("chart.rolling_average"), world, chart.RollingCases),
			},
		},
	}

	for name, spec := range specs {
		if err := writeChart(filepath.Join(w.dir, name), spec, t("dashboard.no_data")); nil != err {
			log.WithFields(log.Fields{"prefix": logPrefix, "file": name, "error": err}).Error("write chart")
			continue
		}
		log.WithFields(log.Fields{"prefix": logPrefix, "file": name}).Info("write chart")
	}
}

func writeChart(path string, spec chart.Spec, noData string) error {
	f, err := os.Create(path)
	if nil != err {
		return err
	}
	defer f.Close()

	err = chart.Render(f, spec)
	if err == chart.ErrNoData {
		if _, err := f.Seek(0, 0); nil != err {
			return err
		}
		if err := f.Truncate(0); nil != err {
			return err
		}
		return chart.Placeholder(f, spec.Width, spec.Height, noData)
	}
	return err
}

// newWorldCharts - new job rendering the world charts into dir
func newWorldCharts(p *pipeline.Pipeline, dir string) Cron {
	return &worldCharts{
		pipeline: p,
		dir:      dir,
	}
}
