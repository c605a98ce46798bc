package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-tracker/external/ecdc"
	"github.com/bitmark-inc/covid-tracker/external/mocks"
	"github.com/bitmark-inc/covid-tracker/pipeline"
	"github.com/bitmark-inc/covid-tracker/schema"
)

func testRecords() []schema.CaseRecord {
	records := make([]schema.CaseRecord, 0)
	for i := 0; i < 20; i++ {
		d := time.Date(2020, time.February, 20+i, 0, 0, 0, 0, time.UTC)
		records = append(records,
			schema.CaseRecord{Date: d, Region: "Austria", GeoID: "AT", Cases: 100 + 10*i, Deaths: 1 + i%3},
			schema.CaseRecord{Date: d, Region: "Belgium", GeoID: "BE", Cases: 50, Deaths: 0},
		)
	}
	// three days only
	for i := 0; i < 3; i++ {
		d := time.Date(2020, time.March, 5+i, 0, 0, 0, 0, time.UTC)
		records = append(records, schema.CaseRecord{Date: d, Region: "United Kingdom", Cases: 1000})
	}
	return records
}

func newTestServer(t *testing.T, records []schema.CaseRecord, err error) (*gin.Engine, *gomock.Controller) {
	ctl := gomock.NewController(t)
	loader := mocks.NewMockLoader(ctl)
	loader.EXPECT().Load(gomock.Any()).Return(records, err).AnyTimes()

	gin.SetMode(gin.TestMode)
	s := NewServer(pipeline.NewSession(loader, pipeline.DefaultConfig(), nil), "test")
	return s.setupRouter(), ctl
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegions(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/api/regions")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp map[string][]string
	err := json.Unmarshal(w.Body.Bytes(), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, []string{"Austria", "Belgium", "United Kingdom"}, jResp["regions"])
}

func TestWorld(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/api/world")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp struct {
		Series schema.Series `json:"series"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")

	// February 20 to March 10, displayed from March 1
	assert.Len(t, jResp.Series, 10)
	assert.Equal(t, time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), jResp.Series[0].Date.UTC())
	assert.NotNil(t, jResp.Series[0].RollingCases)
}

func TestRegion(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/api/regions/Belgium")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, "Belgium", jResp["region"])
	assert.Nil(t, jResp["growth_error"])

	growth := jResp["growth"].(map[string]interface{})
	cases := growth["cases"].(map[string]interface{})
	assert.Equal(t, 0.0, cases["percent"])
	assert.Equal(t, true, cases["defined"])

	deaths := growth["deaths"].(map[string]interface{})
	assert.Equal(t, false, deaths["defined"])
}

func TestRegionShortSeries(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/api/regions/United%20Kingdom")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Nil(t, jResp["growth"])
	assert.Equal(t, "insufficient data", jResp["growth_error"])
	assert.Len(t, jResp["series"], 3)
}

func TestRegionUnknown(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/api/regions/Atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")

	var jResp ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, int64(1001), jResp.Code)
}

func TestDatasetUnavailable(t *testing.T) {
	router, ctl := newTestServer(t, nil, &ecdc.FetchError{Source: "test", Err: errors.New("connection refused")})
	defer ctl.Finish()

	w := get(router, "/api/regions")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")

	var jResp ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &jResp)
	assert.Nil(t, err, "wrong json unmarshal")
	assert.Equal(t, errorDatasetUnavailable, jResp)

	w = get(router, "/")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")
	assert.Contains(t, w.Body.String(), "The dataset could not be loaded")
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestDashboard(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	body := w.Body.String()
	assert.Contains(t, body, "Covid Tracker App")
	assert.Contains(t, body, `<option value="Austria" selected>`)
	assert.Contains(t, body, "/charts/regions/Austria/cases.svg")
	assert.Contains(t, body, `<p class="metric" id="growth-deaths">`)

	w = get(router, "/?region=Belgium")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	body = w.Body.String()
	assert.Contains(t, body, `<option value="Belgium" selected>`)
	assert.Contains(t, body, `<p class="metric" id="growth-cases">0.00%</p>`)
	assert.Contains(t, body, `<p class="metric" id="growth-deaths">undefined</p>`)

	w = get(router, "/?region=United+Kingdom&lang=zh-TW")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	body = w.Body.String()
	assert.Contains(t, body, "全球分析")
	assert.Contains(t, body, `<p class="metric" id="growth-cases">無資料</p>`)
	assert.Contains(t, body, "/charts/regions/United%20Kingdom/cases.svg?lang=zh-TW")

	w = get(router, "/?region=Atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
}

func TestDashboardTotals(t *testing.T) {
	records := []schema.CaseRecord{
		{Date: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), Region: "Austria", Cases: 1234567, Deaths: 1000},
	}
	router, ctl := newTestServer(t, records, nil)
	defer ctl.Finish()

	w := get(router, "/?lang=en")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Contains(t, w.Body.String(), "1,234,567")
	assert.Contains(t, w.Body.String(), "1,000")
}

func TestCharts(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	for _, target := range []string{
		"/charts/world/cumulative.svg",
		"/charts/world/daily.svg",
		"/charts/regions/Austria/cases.svg",
		"/charts/regions/Austria/deaths.svg",
	} {
		w := get(router, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, svgContentType, w.Header().Get("Content-Type"), target)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(w.Body.String()), "<svg"), target)
	}

	w := get(router, "/charts/regions/Austria/cases.svg")
	assert.Contains(t, w.Body.String(), "New Cases in Austria per Day")

	w = get(router, "/charts/regions/Atlantis/cases.svg")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartPlaceholder(t *testing.T) {
	records := []schema.CaseRecord{
		{Date: time.Date(2020, time.March, 9, 0, 0, 0, 0, time.UTC), Region: "Malta", Cases: 3},
	}
	router, ctl := newTestServer(t, records, nil)
	defer ctl.Finish()

	// a single displayed date has nothing to plot
	w := get(router, "/charts/regions/Malta/cases.svg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, svgContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "No data")

	w = get(router, "/charts/world/daily.svg?lang=zh-TW")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "無資料")
}

func TestHealthz(t *testing.T) {
	router, ctl := newTestServer(t, testRecords(), nil)
	defer ctl.Finish()

	w := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	var jResp map[string]interface{}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp))
	assert.Equal(t, "OK", jResp["status"])
	assert.Equal(t, "test", jResp["version"])
	assert.Equal(t, false, jResp["loaded"])
}

func TestShutdownBeforeRun(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	gin.SetMode(gin.TestMode)
	s := NewServer(pipeline.NewSession(mocks.NewMockLoader(ctl), pipeline.DefaultConfig(), nil), "test")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Nil(t, s.Shutdown(ctx))
	assert.Equal(t, http.ErrServerClosed, s.Run("127.0.0.1:0"))
}
