package api

import (
	_ "embed"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/bitmark-inc/covid-tracker/pipeline"
	"github.com/bitmark-inc/covid-tracker/stats"
	"github.com/bitmark-inc/covid-tracker/utils"
)

//go:embed templates/dashboard.html
var dashboardTemplate string

type chartURLs struct {
	WorldCumulative string
	WorldDaily      string
	RegionCases     string
	RegionDeaths    string
}

type dashboardData struct {
	T            func(id string) string
	Lang         string
	Error        string
	Regions      []string
	Selected     string
	TotalCases   string
	TotalDeaths  string
	GrowthCases  string
	GrowthDeaths string
	Charts       chartURLs
}

func (s *Server) dashboard(c *gin.Context) {
	loc, lang := localizer(c)
	data := dashboardData{
		T:    func(id string) string { return utils.Translate(loc, id, nil) },
		Lang: c.Query("lang"),
	}

	p, err := s.session.Pipeline(c.Request.Context())
	if nil != err {
		log.WithError(err).Error("dashboard dataset")
		c.Error(err)
		data.Error = data.T("dashboard.load_failed") + " (" + err.Error() + ")"
		c.HTML(http.StatusServiceUnavailable, "dashboard.html", data)
		return
	}

	data.Regions = p.Regions()
	data.Selected = c.Query("region")
	if data.Selected == "" && len(data.Regions) > 0 {
		data.Selected = data.Regions[0]
	}

	if last, ok := p.World().Last(); ok {
		data.TotalCases = utils.FormatCount(lang, last.CumulativeCases)
		data.TotalDeaths = utils.FormatCount(lang, last.CumulativeDeaths)
	}

	query := ""
	if data.Lang != "" {
		query = "?lang=" + url.QueryEscape(data.Lang)
	}
	data.Charts.WorldCumulative = "/charts/world/cumulative.svg" + query
	data.Charts.WorldDaily = "/charts/world/daily.svg" + query

	if data.Selected == "" {
		c.HTML(http.StatusOK, "dashboard.html", data)
		return
	}

	view, err := p.Recompute(data.Selected)
	if err == pipeline.ErrUnknownRegion {
		data.Error = errorUnknownRegion.Message + ": " + data.Selected
		c.HTML(http.StatusNotFound, "dashboard.html", data)
		return
	}
	if nil != err {
		c.Error(err)
		data.Error = errorInternalServer.Message
		c.HTML(http.StatusInternalServerError, "dashboard.html", data)
		return
	}

	data.GrowthCases, data.GrowthDeaths = growthText(loc, view)
	regionPath := "/charts/regions/" + url.PathEscape(view.Region)
	data.Charts.RegionCases = regionPath + "/cases.svg" + query
	data.Charts.RegionDeaths = regionPath + "/deaths.svg" + query

	c.HTML(http.StatusOK, "dashboard.html", data)
}

func growthText(loc *i18n.Localizer, view pipeline.RegionView) (string, string) {
	if view.Growth == nil {
		na := utils.Translate(loc, "dashboard.not_available", nil)
		return na, na
	}
	return rateText(loc, view.Growth.Cases), rateText(loc, view.Growth.Deaths)
}

func rateText(loc *i18n.Localizer, r stats.Rate) string {
	if !r.Defined {
		return utils.Translate(loc, "dashboard.undefined", nil)
	}
	return r.String()
}
