package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bitmark-inc/covid-tracker/chart"
	"github.com/bitmark-inc/covid-tracker/utils"
)

const svgContentType = "image/svg+xml"

func (s *Server) worldCumulativeChart(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}
	loc, _ := localizer(c)

	world := p.World()
	deaths := chart.Daily(utils.Translate(loc, "chart.deaths", nil), world, chart.CumulativeDeaths)
	deaths.Secondary = true

	renderChart(c, loc, chart.Spec{
		Title:          utils.Translate(loc, "chart.world_cumulated", nil),
		XName:          utils.Translate(loc, "chart.date", nil),
		YName:          utils.Translate(loc, "chart.cases", nil),
		YSecondaryName: utils.Translate(loc, "chart.deaths", nil),
		Lines: []chart.Line{
			chart.Daily(utils.Translate(loc, "chart.cases", nil), world, chart.CumulativeCases),
			deaths,
		},
	})
}

func (s *Server) worldDailyChart(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}
	loc, _ := localizer(c)

	world := p.World()
	renderChart(c, loc, chart.Spec{
		Title: utils.Translate(loc, "chart.world_new_cases", nil),
		XName: utils.Translate(loc, "chart.date", nil),
		YName: utils.Translate(loc, "chart.cases_per_day", nil),
		Lines: []chart.Line{
			chart.Daily(utils.Translate(loc, "chart.cases_per_day", nil), world, chart.Cases),
			chart.Rolling(utils.Translate(loc, "chart.rolling_average", nil), world, chart.RollingCases),
		},
	})
}

func (s *Server) regionCasesChart(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}
	view, ok := recompute(c, p, c.Param("region"))
	if !ok {
		return
	}
	loc, _ := localizer(c)

	renderChart(c, loc, chart.Spec{
		Title: utils.Translate(loc, "chart.region_new_cases", map[string]interface{}{"Region": view.Region}),
		XName: utils.Translate(loc, "chart.date", nil),
		YName: utils.Translate(loc, "chart.cases_per_day", nil),
		Lines: []chart.Line{
			chart.Daily(utils.Translate(loc, "chart.cases_per_day", nil), view.Series, chart.Cases),
			chart.Rolling(utils.Translate(loc, "chart.rolling_average", nil), view.Series, chart.RollingCases),
		},
	})
}

func (s *Server) regionDeathsChart(c *gin.Context) {
	p, ok := s.loadPipeline(c)
	if !ok {
		return
	}
	view, ok := recompute(c, p, c.Param("region"))
	if !ok {
		return
	}
	loc, _ := localizer(c)

	renderChart(c, loc, chart.Spec{
		Title: utils.Translate(loc, "chart.region_new_deaths", map[string]interface{}{"Region": view.Region}),
		XName: utils.Translate(loc, "chart.date", nil),
		YName: utils.Translate(loc, "chart.deaths_per_day", nil),
		Lines: []chart.Line{
			chart.Daily(utils.Translate(loc, "chart.deaths_per_day", nil), view.Series, chart.Deaths),
			chart.Rolling(utils.Translate(loc, "chart.rolling_average", nil), view.Series, chart.RollingDeaths),
		},
	})
}

// renderChart writes the chart as svg, or a placeholder when there is not
// enough data to plot.
func renderChart(c *gin.Context, loc *i18n.Localizer, spec chart.Spec) {
	var buf bytes.Buffer
	err := chart.Render(&buf, spec)
	if err == chart.ErrNoData {
		buf.Reset()
		err = chart.Placeholder(&buf, spec.Width, spec.Height, utils.Translate(loc, "dashboard.no_data", nil))
	}
	if nil != err {
		log.WithError(err).Error("render chart")
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.Data(http.StatusOK, svgContentType, buf.Bytes())
}
