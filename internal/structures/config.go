package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type WeatherConfig struct {
	BaseURL string `yaml:"baseUrl" validate:"required|fullUrl"`
	APIKey  string `yaml:"apiKey" validate:"required"`
	Units   string `yaml:"units" validate:"required|in:metric,imperial,standard"`
}

type DisplayConfig struct {
	// Timezone is an IANA name used to label forecast days, e.g. "Europe/Berlin".
	Timezone string `yaml:"timezone"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	// TTL bounds how long a rendered state body is kept.
	TTL time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Weather   WeatherConfig `yaml:"weather"`
	Display   DisplayConfig `yaml:"display"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
