package pipeline

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DateLayout is the layout of the pipeline.* date keys.
const DateLayout = "2006-01-02"

var configKeys = []string{
	"pipeline.aggregate_from",
	"pipeline.world_display_from",
	"pipeline.region_display_from",
}

// SetConfigDefaults registers DefaultConfig as the viper defaults of the
// pipeline.* keys.
func SetConfigDefaults() {
	defaults := DefaultConfig()
	viper.SetDefault("pipeline.aggregate_from", defaults.AggregateFrom.Format(DateLayout))
	viper.SetDefault("pipeline.world_display_from", defaults.WorldDisplayFrom.Format(DateLayout))
	viper.SetDefault("pipeline.region_display_from", defaults.RegionDisplayFrom.Format(DateLayout))
	viper.SetDefault("pipeline.window", defaults.Window)
}

// ConfigFromViper reads the pipeline.* keys.
func ConfigFromViper() (Config, error) {
	config := Config{
		Window: viper.GetInt("pipeline.window"),
	}

	targets := []*time.Time{
		&config.AggregateFrom,
		&config.WorldDisplayFrom,
		&config.RegionDisplayFrom,
	}
	for i, key := range configKeys {
		t, err := time.Parse(DateLayout, viper.GetString(key))
		if nil != err {
			return config, fmt.Errorf("%s: %s", key, err)
		}
		*targets[i] = t
	}

	return config, nil
}
