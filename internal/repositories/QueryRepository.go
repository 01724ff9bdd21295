package repositories

import (
	"context"
	"net/http"
	"time"

	"github.com/Otigef/weather-dashboard/config"
	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

// HTTPClient is the slice of *http.Client the repositories need; tests swap in
// a canned implementation.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// QueryRepository issues structured requests to the generative backend.
// Implementations perform no caching and no retries; callers decide.
type QueryRepository interface {
	// FetchWeather resolves a free-text city into a full weather report.
	FetchWeather(ctx context.Context, city string) (models.WeatherReport, error)

	// FetchSuggestions autocompletes a partial city name, up to five
	// "City, Country" strings. Partials shorter than three characters are
	// answered with an empty list without touching the network.
	FetchSuggestions(ctx context.Context, partial string) ([]string, error)
}

func InitQueryRepository(cnf *config.Config, l *observe.Logger) QueryRepository {
	httpClient := &http.Client{
		Timeout: time.Duration(cnf.Backend.Timeout) * time.Second,
	}

	return NewGeminiRepository(cnf.Backend, l, httpClient)
}
