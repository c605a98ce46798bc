package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/covid-tracker/external/ecdc"
	"github.com/bitmark-inc/covid-tracker/pipeline"
)

const (
	logPrefix      = "report"
	defaultTimeout = 60 * time.Second
)

type Cron interface {
	Run()
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

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
	viper.SetDefault("dataset.url", ecdc.DefaultURL)
	viper.SetDefault("dataset.timeout", defaultTimeout)
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

// loadPipeline loads the dataset with the pipeline.* configuration, bounded by
// dataset.timeout when it is set
func loadPipeline(loader ecdc.Loader) (*pipeline.Pipeline, error) {
	config, err := pipeline.ConfigFromViper()
	if nil != err {
		return nil, err
	}

	ctx := context.Background()
	if timeout := viper.GetDuration("dataset.timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return pipeline.NewSession(loader, config, nil).Pipeline(ctx)
}

func main() {
	var configFile string
	var regions string
	var chartDir string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.StringVar(&regions, "regions", "", "[optional] comma separated regions to report, all regions when empty")
	flag.StringVar(&chartDir, "charts", "", "[optional] directory to write the world charts into")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	var loader ecdc.Loader
	if file := viper.GetString("dataset.file"); file != "" {
		loader = ecdc.NewFileLoader(file)
	} else {
		loader = ecdc.NewHTTPLoader(viper.GetString("dataset.url"), &http.Client{
			Timeout: viper.GetDuration("dataset.timeout"),
		})
	}

	p, err := loadPipeline(loader)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Fatal("load dataset")
	}

	var selected []string
	for _, r := range strings.Split(regions, ",") {
		if r = strings.TrimSpace(r); r != "" {
			selected = append(selected, r)
		}
	}

	newRegionReport(p, selected).Run()

	if chartDir != "" {
		newWorldCharts(p, chartDir).Run()
	}
}
