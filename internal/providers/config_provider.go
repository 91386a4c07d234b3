package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"weatherd/internal/structures"

	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("weather.baseUrl", DefaultBaseURL)
	v.SetDefault("weather.units", "metric")
	v.SetDefault("display.timezone", "UTC")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)

	_ = v.BindEnv("weather.apiKey", "WEATHERD_API_KEY")
	_ = v.BindEnv("weather.baseUrl", "WEATHERD_BASE_URL")
	_ = v.BindEnv("weather.units", "WEATHERD_UNITS")
	_ = v.BindEnv("logger.level", "WEATHERD_LOG_LEVEL")
	_ = v.BindEnv("cache.enabled", "WEATHERD_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "WEATHERD_CACHE_SIZE")
	_ = v.BindEnv("metrics.enabled", "WEATHERD_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WeatherDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
