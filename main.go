package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/covid-tracker/api"
	"github.com/bitmark-inc/covid-tracker/external/ecdc"
	"github.com/bitmark-inc/covid-tracker/logmodule"
	"github.com/bitmark-inc/covid-tracker/pipeline"
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.version", "dev")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("dataset.url", ecdc.DefaultURL)
	viper.SetDefault("dataset.timeout", 0)
	viper.SetDefault("metrics.prefix", "covid_tracker")
	viper.SetDefault("metrics.interval", time.Minute)
	pipeline.SetConfigDefaults()

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func newLoader() ecdc.Loader {
	if file := viper.GetString("dataset.file"); file != "" {
		return ecdc.NewFileLoader(file)
	}

	httpClient := &http.Client{
		Timeout: viper.GetDuration("dataset.timeout"),
	}
	return ecdc.NewHTTPLoader(viper.GetString("dataset.url"), httpClient)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownOnSignal waits for a signal, cancels the initialization, stops the
// server and flushes metrics and sentry before exiting.
func shutdownOnSignal(c <-chan os.Signal, cancelInitialization context.CancelFunc, server shutdowner, metricsCloser io.Closer, exit func(int)) {
	<-c
	log.Info("Server is preparing to shutdown")

	log.Info("Cancelling initialization")
	cancelInitialization()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("Shutdown dashboard server")
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server Shutdown:", err)
	}

	if err := metricsCloser.Close(); err != nil {
		log.Error("Metrics Close:", err)
	}

	sentry.Flush(2 * time.Second)
	exit(1)
}

func main() {
	var configFile string

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	scope, metricsCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   viper.GetString("metrics.prefix"),
		Reporter: logmodule.NewStatsReporter(log.WithField("prefix", "metrics")),
	}, viper.GetDuration("metrics.interval"))
	log.WithField("prefix", "init").Info("Initialized metrics scope")

	config, err := pipeline.ConfigFromViper()
	if err != nil {
		log.Panic(err)
	}

	session := pipeline.NewSession(newLoader(), config, scope)

	server := api.NewServer(session, viper.GetString("server.version"))
	log.WithField("prefix", "init").Info("Initialized http server")

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	defer cancelInitialization()

	go shutdownOnSignal(c, cancelInitialization, server, metricsCloser, os.Exit)

	// warm up the session, a failure is shown on the dashboard and the next
	// page load tries again
	if _, err := session.Pipeline(initialCtx); err != nil {
		sentry.CaptureException(err)
		log.WithField("prefix", "init").WithError(err).Error("Dataset is not loaded")
	} else {
		log.WithField("prefix", "init").Info("Loaded dataset")
	}

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
