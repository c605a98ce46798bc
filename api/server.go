package api

import (
	"context"
	"html/template"
	"net"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-tracker/logmodule"
	"github.com/bitmark-inc/covid-tracker/pipeline"
	"github.com/bitmark-inc/covid-tracker/utils"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// dataset of the running process
	session *pipeline.Session

	version string
}

// NewServer new instance of server
func NewServer(session *pipeline.Session, version string) *Server {
	s := &Server{
		session: session,
		version: version,
	}
	s.server = &http.Server{
		Handler: s.setupRouter(),
	}

	return s
}

// Run to run the server
func (s *Server) Run(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if nil != err {
		return err
	}

	return s.server.Serve(ln)
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.SetHTMLTemplate(template.Must(template.New("dashboard.html").Parse(dashboardTemplate)))

	dashboardRoute := r.Group("/")
	dashboardRoute.Use(logmodule.Ginrus("Dashboard"))
	{
		dashboardRoute.GET("", s.dashboard)
	}

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Origin"},
		ExposeHeaders:   []string{"Content-Length"},
		AllowAllOrigins: true,
		MaxAge:          12 * time.Hour,
	}))
	{
		apiRoute.GET("/regions", s.regions)
		apiRoute.GET("/regions/:region", s.region)
		apiRoute.GET("/world", s.world)
	}

	chartRoute := r.Group("/charts")
	chartRoute.Use(logmodule.Ginrus("Chart"))
	{
		chartRoute.GET("/world/cumulative.svg", s.worldCumulativeChart)
		chartRoute.GET("/world/daily.svg", s.worldDailyChart)
		chartRoute.GET("/regions/:region/cases.svg", s.regionCasesChart)
		chartRoute.GET("/regions/:region/deaths.svg", s.regionDeathsChart)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// loadPipeline returns the pipeline of the session. A failed load aborts the
// request with 503, the next request loads again.
func (s *Server) loadPipeline(c *gin.Context) (*pipeline.Pipeline, bool) {
	p, err := s.session.Pipeline(c.Request.Context())
	if nil != err {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorDatasetUnavailable, err)
		return nil, false
	}
	return p, true
}

// localizer picks the language of the `lang` query, then of Accept-Language.
func localizer(c *gin.Context) (*i18n.Localizer, string) {
	lang := c.Query("lang")
	if lang == "" {
		lang = c.GetHeader("Accept-Language")
	}
	return utils.NewLocalizer(lang), lang
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": s.version,
		"loaded":  s.session.Loaded(),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
