package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/Otigef/weather-dashboard/config"
	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

const minSuggestionQueryLen = 3

type GeminiRepository struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient HTTPClient
	l          *observe.Logger
}

func NewGeminiRepository(cnf config.BackendConfig, l *observe.Logger, httpClient HTTPClient) *GeminiRepository {
	return &GeminiRepository{
		baseURL:    strings.TrimRight(cnf.BaseURL, "/"),
		model:      cnf.Model,
		apiKey:     cnf.APIKey,
		httpClient: httpClient,
		l:          l,
	}
}

func (g *GeminiRepository) Name() string {
	return "gemini"
}

// Wire types of the generateContent endpoint.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Payload shapes the prompts contract the backend into. Pointer fields let the
// validator tell "absent" from "zero"; the requested schema is never trusted.

type currentPayload struct {
	Temp        *float64 `json:"temp"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	Description *string  `json:"description"`
}

type forecastDayPayload struct {
	Day         *string  `json:"day"`
	TempHigh    *float64 `json:"temp_high"`
	TempLow     *float64 `json:"temp_low"`
	Description *string  `json:"description"`
}

type weatherPayload struct {
	Current  *currentPayload      `json:"current"`
	Forecast []forecastDayPayload `json:"forecast"`
}

func (g *GeminiRepository) FetchWeather(ctx context.Context, city string) (models.WeatherReport, error) {
	var report models.WeatherReport

	prompt := fmt.Sprintf(weatherPrompt, strings.TrimSpace(city))

	g.l.Info("making weather request", map[string]any{"city": city})

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return report, err
	}

	var payload weatherPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return report, errors.Wrapf(models.ErrMalformedResponse, "parse weather JSON: %v", err)
	}

	report, err = buildReport(payload)
	if err != nil {
		return report, err
	}

	g.l.Info("parsed weather response", map[string]any{
		"city": city,
		"days": len(report.Forecast),
	})

	return report, nil
}

func (g *GeminiRepository) FetchSuggestions(ctx context.Context, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)

	// Hard precondition, not a backend concern.
	if len(partial) < minSuggestionQueryLen {
		return []string{}, nil
	}

	prompt := fmt.Sprintf(suggestionsPrompt, partial)

	g.l.Debug("making suggestion request", map[string]any{"partial": partial})

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return nil, errors.Wrapf(models.ErrMalformedResponse, "parse suggestions JSON: %v", err)
	}

	if len(suggestions) > models.MaxSuggestions {
		suggestions = suggestions[:models.MaxSuggestions]
	}

	return suggestions, nil
}

// generate runs one prompt through the backend and returns the model's text
// with any markdown fences stripped.
func (g *GeminiRepository) generate(ctx context.Context, prompt string) ([]byte, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(models.ErrTransport, "do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(models.ErrTransport, "read response body: %v", err)
	}

	g.l.Debug("received backend response", map[string]any{
		"status": resp.StatusCode,
	})

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(models.ErrTransport, "HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return nil, errors.Wrapf(models.ErrMalformedResponse, "parse envelope: %v", err)
	}

	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return nil, errors.Wrap(models.ErrMalformedResponse, "empty candidate list")
	}

	return []byte(stripFences(gen.Candidates[0].Content.Parts[0].Text)), nil
}

// stripFences removes a ```json ... ``` wrapper some models still emit even
// when asked for raw JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// buildReport validates the payload shape and lifts it into the domain model.
func buildReport(payload weatherPayload) (models.WeatherReport, error) {
	var report models.WeatherReport

	cur := payload.Current
	if cur == nil {
		return report, errors.Wrap(models.ErrMalformedResponse, "missing current block")
	}
	if cur.Temp == nil || cur.Humidity == nil || cur.WindSpeed == nil || cur.Description == nil {
		return report, errors.Wrap(models.ErrMalformedResponse, "current block missing required field")
	}

	report.Current = models.CurrentWeather{
		TemperatureCelsius: *cur.Temp,
		HumidityPercent:    *cur.Humidity,
		WindSpeedKmh:       *cur.WindSpeed,
		Description:        *cur.Description,
	}

	for i, day := range payload.Forecast {
		if day.Day == nil || day.TempHigh == nil || day.TempLow == nil || day.Description == nil {
			return models.WeatherReport{}, errors.Wrapf(models.ErrMalformedResponse, "forecast entry %d missing required field", i)
		}
		report.Forecast = append(report.Forecast, models.ForecastDay{
			Day:             *day.Day,
			TempHighCelsius: *day.TempHigh,
			TempLowCelsius:  *day.TempLow,
			Description:     *day.Description,
		})
	}

	report.ClampForecast()

	return report, nil
}
