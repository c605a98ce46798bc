package pipeline

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigFromViperDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetConfigDefaults()
	config, err := ConfigFromViper()
	assert.Nil(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestConfigFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetConfigDefaults()
	viper.Set("pipeline.aggregate_from", "2020-03-01")
	viper.Set("pipeline.region_display_from", "2020-03-05")
	viper.Set("pipeline.window", 3)

	config, err := ConfigFromViper()
	assert.Nil(t, err)
	assert.Equal(t, march(1), config.AggregateFrom)
	assert.Equal(t, DefaultConfig().WorldDisplayFrom, config.WorldDisplayFrom)
	assert.Equal(t, march(5), config.RegionDisplayFrom)
	assert.Equal(t, 3, config.Window)
}

func TestConfigFromViperInvalidDate(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetConfigDefaults()
	viper.Set("pipeline.world_display_from", "01/03/2020")

	_, err := ConfigFromViper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline.world_display_from")
}
