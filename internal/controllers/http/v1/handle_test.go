package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/Otigef/weather-dashboard/internal/controllers/http/v1"
	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/internal/services/session"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

type stubQueryRepository struct {
	weatherErr error
}

func (s *stubQueryRepository) FetchWeather(ctx context.Context, city string) (models.WeatherReport, error) {
	if s.weatherErr != nil {
		return models.WeatherReport{}, s.weatherErr
	}
	return models.WeatherReport{
		Current: models.CurrentWeather{
			TemperatureCelsius: 33,
			HumidityPercent:    40,
			WindSpeedKmh:       8,
			Description:        "clear sky",
		},
		Forecast: []models.ForecastDay{
			{Day: "Monday", TempHighCelsius: 34, TempLowCelsius: 25, Description: "clear"},
		},
	}, nil
}

func (s *stubQueryRepository) FetchSuggestions(ctx context.Context, partial string) ([]string, error) {
	return []string{"London, United Kingdom"}, nil
}

type stubFavoritesStore struct {
	cities []string
}

func (s *stubFavoritesStore) Load() []string            { return append([]string(nil), s.cities...) }
func (s *stubFavoritesStore) Save(cities []string) error { s.cities = cities; return nil }
func (s *stubFavoritesStore) Close() error              { return nil }

func newApp(t *testing.T, repo *stubQueryRepository) (*fiber.App, *session.Session) {
	t.Helper()

	logger := observe.NewZapLogger("test-app")
	sess := session.New(repo, &stubFavoritesStore{}, logger, session.Options{
		Debounce:        10 * time.Millisecond,
		RefreshInterval: time.Hour,
		DefaultCity:     "London",
	})

	app := fiber.New()
	v1.NewRouter(app, sess, logger)

	return app, sess
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestHandleDashboard_InitialPhaseIsLoading(t *testing.T) {
	app, _ := newApp(t, &stubQueryRepository{})

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dash v1.DashboardResponse
	decodeBody(t, resp, &dash)
	assert.Equal(t, "loading", dash.Phase)
	assert.Nil(t, dash.Weather)
}

func TestHandleSearch_Success(t *testing.T) {
	app, _ := newApp(t, &stubQueryRepository{})

	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"city": "Cairo"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dash v1.DashboardResponse
	decodeBody(t, resp, &dash)
	assert.Equal(t, "content", dash.Phase)
	assert.Equal(t, "Cairo", dash.City)
	require.NotNil(t, dash.Weather)
	assert.Equal(t, 33.0, dash.Weather.Temperature)
	assert.Contains(t, dash.Weather.Alerts, "heat")
}

func TestHandleSearch_EmptyCity(t *testing.T) {
	app, _ := newApp(t, &stubQueryRepository{})

	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"city": "  "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleSearch_BackendFailureYieldsErrorPhase(t *testing.T) {
	app, _ := newApp(t, &stubQueryRepository{weatherErr: models.ErrTransport})

	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"city": "Cairo"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dash v1.DashboardResponse
	decodeBody(t, resp, &dash)
	assert.Equal(t, "error", dash.Phase)
	assert.Equal(t, session.SearchFailedMessage, dash.Error)
	assert.Nil(t, dash.Weather)
}

func TestHandleToggleFavorite_NoCurrentCity(t *testing.T) {
	app, _ := newApp(t, &stubQueryRepository{})

	resp, err := app.Test(httptest.NewRequest("POST", "/favorites/toggle", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleToggleFavorite_AddThenRemoveNeedsConfirm(t *testing.T) {
	app, sess := newApp(t, &stubQueryRepository{})

	_, err := sess.Search(context.Background(), "Cairo")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/favorites/toggle", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var favs v1.FavoritesResponse
	decodeBody(t, resp, &favs)
	assert.True(t, favs.IsFavorite)
	assert.Equal(t, []string{"Cairo"}, favs.Favorites)

	// removal without confirm is refused
	resp, err = app.Test(httptest.NewRequest("POST", "/favorites/toggle", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/favorites/toggle?confirm=true", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &favs)
	assert.False(t, favs.IsFavorite)
	assert.Empty(t, favs.Favorites)
}

func TestHandleRemoveFavorite(t *testing.T) {
	app, sess := newApp(t, &stubQueryRepository{})
	require.NoError(t, sess.AddFavorite("Cairo"))

	resp, err := app.Test(httptest.NewRequest("DELETE", "/favorites/Cairo", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/favorites/cairo?confirm=true", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var favs v1.FavoritesResponse
	decodeBody(t, resp, &favs)
	assert.Empty(t, favs.Favorites)
}

func TestHandleInputAndSuggestions(t *testing.T) {
	app, _ := newApp(t, &stubQueryRepository{})

	req := httptest.NewRequest("POST", "/input", strings.NewReader(`{"query": "Lond"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	time.Sleep(80 * time.Millisecond) // wait out the debounce

	resp, err = app.Test(httptest.NewRequest("GET", "/suggestions", nil))
	require.NoError(t, err)

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, []string{"London, United Kingdom"}, out.Suggestions)
}
