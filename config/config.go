package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppName    string `envconfig:"APP_NAME" default:"weather-dashboard"`
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	Port       string `envconfig:"PORT" default:"8080"`
	SentryDSN  string `envconfig:"SENTRY_DSN"`

	Backend   BackendConfig   `yaml:"backend"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// BackendConfig describes the generative backend that answers weather prompts.
// The API key is deliberately env-only so it never lands in the YAML file.
type BackendConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"BACKEND_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	Model   string `yaml:"model" envconfig:"BACKEND_MODEL" default:"gemini-2.0-flash"`
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	Timeout int    `yaml:"timeout_seconds" envconfig:"BACKEND_TIMEOUT_SECONDS" default:"30"`
}

type DashboardConfig struct {
	DefaultCity     string `yaml:"default_city" envconfig:"DEFAULT_CITY" default:"London"`
	DebounceMillis  int    `yaml:"debounce_millis" envconfig:"DEBOUNCE_MILLIS" default:"300"`
	RefreshMinutes  int    `yaml:"refresh_minutes" envconfig:"REFRESH_MINUTES" default:"15"`
	ForecastWindow  int    `yaml:"forecast_window" envconfig:"FORECAST_WINDOW" default:"5"`
	FavoritesDBPath string `yaml:"favorites_db_path" envconfig:"FAVORITES_DB_PATH" default:"favorites.db"`
}

func (d DashboardConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMillis) * time.Millisecond
}

func (d DashboardConfig) RefreshInterval() time.Duration {
	return time.Duration(d.RefreshMinutes) * time.Minute
}

func NewConfig() *Config {
	var cnf Config

	// Read from YAML file first
	if yamlData, err := os.ReadFile("config/config.yaml"); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			panic(fmt.Sprintf("Warning: failed to parse YAML config: %v\n", err))
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		panic(fmt.Errorf("error environment variable parsing: %w", err))
	}

	return &cnf
}
