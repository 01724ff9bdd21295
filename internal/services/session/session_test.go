package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/internal/services/session"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

// MockQueryRepository implements QueryRepository for testing
type MockQueryRepository struct {
	mu              sync.Mutex
	weatherCalls    []string
	suggestionCalls []string
	weatherFn       func(city string) (models.WeatherReport, error)
	suggestFn       func(partial string) ([]string, error)
}

func (m *MockQueryRepository) FetchWeather(ctx context.Context, city string) (models.WeatherReport, error) {
	m.mu.Lock()
	m.weatherCalls = append(m.weatherCalls, city)
	fn := m.weatherFn
	m.mu.Unlock()

	if fn != nil {
		return fn(city)
	}
	return reportFor(city), nil
}

func (m *MockQueryRepository) FetchSuggestions(ctx context.Context, partial string) ([]string, error) {
	m.mu.Lock()
	m.suggestionCalls = append(m.suggestionCalls, partial)
	fn := m.suggestFn
	m.mu.Unlock()

	if fn != nil {
		return fn(partial)
	}
	return []string{partial + ", Somewhere"}, nil
}

func (m *MockQueryRepository) WeatherCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.weatherCalls...)
}

func (m *MockQueryRepository) SuggestionCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.suggestionCalls...)
}

// MockFavoritesStore implements FavoritesStore for testing
type MockFavoritesStore struct {
	mu        sync.Mutex
	initial   []string
	saved     [][]string
	saveErr   error
	saveCalls int
}

func (m *MockFavoritesStore) Load() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.initial...)
}

func (m *MockFavoritesStore) Save(cities []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, append([]string(nil), cities...))
	return nil
}

func (m *MockFavoritesStore) Close() error { return nil }

func (m *MockFavoritesStore) LastSaved() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

func reportFor(city string) models.WeatherReport {
	return models.WeatherReport{
		Current: models.CurrentWeather{
			TemperatureCelsius: 20,
			HumidityPercent:    60,
			WindSpeedKmh:       10,
			Description:        "clear sky over " + city,
		},
		Forecast: []models.ForecastDay{
			{Day: "Monday", TempHighCelsius: 22, TempLowCelsius: 14, Description: "clear"},
		},
	}
}

func newSession(repo *MockQueryRepository, store *MockFavoritesStore) *session.Session {
	logger := observe.NewZapLogger("test-app")
	return session.New(repo, store, logger, session.Options{
		Debounce:        30 * time.Millisecond,
		RefreshInterval: time.Hour,
		DefaultCity:     "London",
	})
}

func TestSession_StartUsesFirstFavorite(t *testing.T) {
	repo := &MockQueryRepository{}
	store := &MockFavoritesStore{initial: []string{"Paris", "Tokyo"}}
	s := newSession(repo, store)

	snap := s.Start(context.Background())

	assert.Equal(t, session.PhaseContent, snap.Phase)
	assert.Equal(t, "Paris", snap.City)
	assert.True(t, snap.IsFavorite)
	assert.Equal(t, []string{"Paris"}, repo.WeatherCalls())
}

func TestSession_StartFallsBackToDefaultCity(t *testing.T) {
	repo := &MockQueryRepository{}
	store := &MockFavoritesStore{}
	s := newSession(repo, store)

	snap := s.Start(context.Background())

	assert.Equal(t, "London", snap.City)
	assert.Equal(t, session.PhaseContent, snap.Phase)
	assert.False(t, snap.IsFavorite)
}

func TestSession_SearchSuccess(t *testing.T) {
	repo := &MockQueryRepository{}
	s := newSession(repo, &MockFavoritesStore{})

	snap, err := s.Search(context.Background(), "  Madrid  ")

	require.NoError(t, err)
	assert.Equal(t, session.PhaseContent, snap.Phase)
	assert.Equal(t, "Madrid", snap.City)
	assert.True(t, snap.HasReport)
	assert.Empty(t, snap.ErrorMessage)
}

func TestSession_SearchEmptyCity(t *testing.T) {
	repo := &MockQueryRepository{}
	s := newSession(repo, &MockFavoritesStore{})

	_, err := s.Search(context.Background(), "   ")

	assert.Error(t, err)
	assert.Empty(t, repo.WeatherCalls())
}

func TestSession_SearchFailureShowsFixedMessage(t *testing.T) {
	repo := &MockQueryRepository{
		weatherFn: func(city string) (models.WeatherReport, error) {
			return models.WeatherReport{}, errors.Wrap(models.ErrTransport, "boom")
		},
	}
	s := newSession(repo, &MockFavoritesStore{})

	snap, err := s.Search(context.Background(), "Madrid")

	require.NoError(t, err)
	assert.Equal(t, session.PhaseError, snap.Phase)
	assert.Equal(t, session.SearchFailedMessage, snap.ErrorMessage)
	// currentCity only moves on success
	assert.Empty(t, snap.City)
}

func TestSession_StaleSearchDiscarded(t *testing.T) {
	repo := &MockQueryRepository{
		weatherFn: func(city string) (models.WeatherReport, error) {
			if city == "Tokyo" {
				time.Sleep(120 * time.Millisecond)
			}
			return reportFor(city), nil
		},
	}
	s := newSession(repo, &MockFavoritesStore{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Search(context.Background(), "Tokyo")
	}()

	time.Sleep(20 * time.Millisecond)

	snap, err := s.Search(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", snap.City)

	// Let the slow Tokyo response land; it must not overwrite Paris.
	wg.Wait()

	final := s.Snapshot()
	assert.Equal(t, "Paris", final.City)
	assert.Equal(t, session.PhaseContent, final.Phase)
	assert.Contains(t, final.Report.Current.Description, "Paris")
}

func TestSession_DebounceCollapsesKeystrokes(t *testing.T) {
	repo := &MockQueryRepository{}
	s := newSession(repo, &MockFavoritesStore{})

	s.Input("Lo")
	s.Input("Lon")
	s.Input("Lond")

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, []string{"Lond"}, repo.SuggestionCalls())
	assert.Equal(t, []string{"Lond, Somewhere"}, s.Snapshot().Suggestions)
}

func TestSession_ShortInputSkipsRequest(t *testing.T) {
	repo := &MockQueryRepository{}
	s := newSession(repo, &MockFavoritesStore{})

	s.Input("Lo")

	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, repo.SuggestionCalls())
	assert.Empty(t, s.Snapshot().Suggestions)
}

func TestSession_StaleSuggestionDiscarded(t *testing.T) {
	release := make(chan struct{})
	repo := &MockQueryRepository{}
	repo.suggestFn = func(partial string) ([]string, error) {
		if partial == "Lond" {
			<-release
		}
		return []string{partial + ", Match"}, nil
	}
	s := newSession(repo, &MockFavoritesStore{})

	s.Input("Lond")
	time.Sleep(60 * time.Millisecond) // first request is now in flight

	s.Input("Londo")
	time.Sleep(60 * time.Millisecond) // second request fires and completes

	close(release) // first request completes late
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"Londo, Match"}, s.Snapshot().Suggestions)
}

func TestSession_SearchSupersedesPendingSuggestions(t *testing.T) {
	release := make(chan struct{})
	repo := &MockQueryRepository{}
	repo.suggestFn = func(partial string) ([]string, error) {
		<-release
		return []string{partial + ", Match"}, nil
	}
	s := newSession(repo, &MockFavoritesStore{})

	s.Input("Lond")
	time.Sleep(60 * time.Millisecond) // suggestion request in flight

	_, err := s.Search(context.Background(), "Paris")
	require.NoError(t, err)

	close(release)
	time.Sleep(50 * time.Millisecond)

	// The late suggestion result must not reopen the box.
	assert.Empty(t, s.Snapshot().Suggestions)
}

func TestSession_RefreshUpdatesSilently(t *testing.T) {
	calls := 0
	repo := &MockQueryRepository{}
	repo.weatherFn = func(city string) (models.WeatherReport, error) {
		calls++
		r := reportFor(city)
		if calls > 1 {
			r.Current.TemperatureCelsius = 25
		}
		return r, nil
	}
	s := newSession(repo, &MockFavoritesStore{})

	_, err := s.Search(context.Background(), "Paris")
	require.NoError(t, err)

	s.Refresh(context.Background())

	snap := s.Snapshot()
	assert.Equal(t, session.PhaseContent, snap.Phase)
	assert.Equal(t, 25.0, snap.Report.Current.TemperatureCelsius)
	assert.Empty(t, snap.ErrorMessage)
}

func TestSession_RefreshFailureLeavesStateUntouched(t *testing.T) {
	calls := 0
	repo := &MockQueryRepository{}
	repo.weatherFn = func(city string) (models.WeatherReport, error) {
		calls++
		if calls > 1 {
			return models.WeatherReport{}, errors.Wrap(models.ErrTransport, "backend down")
		}
		return reportFor(city), nil
	}
	s := newSession(repo, &MockFavoritesStore{})

	_, err := s.Search(context.Background(), "Paris")
	require.NoError(t, err)
	before := s.Snapshot()

	s.Refresh(context.Background())

	after := s.Snapshot()
	assert.Equal(t, session.PhaseContent, after.Phase)
	assert.Equal(t, before.Report, after.Report)
	assert.Empty(t, after.ErrorMessage)
}

func TestSession_StaleRefreshDropped(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	repo := &MockQueryRepository{}
	repo.weatherFn = func(city string) (models.WeatherReport, error) {
		calls++
		if calls == 2 {
			// the refresh for Tokyo stalls while the user switches city
			<-release
		}
		return reportFor(city), nil
	}
	s := newSession(repo, &MockFavoritesStore{})

	_, err := s.Search(context.Background(), "Tokyo")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Refresh(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)

	_, err = s.Search(context.Background(), "Paris")
	require.NoError(t, err)

	close(release)
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, "Paris", snap.City)
	assert.Contains(t, snap.Report.Current.Description, "Paris")
}

func TestSession_AddFavoriteIdempotentCaseInsensitive(t *testing.T) {
	store := &MockFavoritesStore{}
	s := newSession(&MockQueryRepository{}, store)

	require.NoError(t, s.AddFavorite("Paris"))
	require.NoError(t, s.AddFavorite("PARIS"))
	require.NoError(t, s.AddFavorite("paris "))

	snap := s.Snapshot()
	assert.Equal(t, []string{"Paris"}, snap.Favorites)
	assert.Equal(t, []string{"Paris"}, store.LastSaved())
}

func TestSession_RemoveFavoriteRequiresConfirmation(t *testing.T) {
	s := newSession(&MockQueryRepository{}, &MockFavoritesStore{})
	require.NoError(t, s.AddFavorite("Paris"))

	err := s.RemoveFavorite("Paris", false)
	assert.ErrorIs(t, err, models.ErrConfirmationRequired)
	assert.Equal(t, []string{"Paris"}, s.Snapshot().Favorites)

	require.NoError(t, s.RemoveFavorite("paris", true))
	assert.Empty(t, s.Snapshot().Favorites)
}

func TestSession_RemoveMissingFavoriteIsNoop(t *testing.T) {
	store := &MockFavoritesStore{}
	s := newSession(&MockQueryRepository{}, store)
	require.NoError(t, s.AddFavorite("Paris"))

	require.NoError(t, s.RemoveFavorite("Berlin", true))

	assert.Equal(t, []string{"Paris"}, s.Snapshot().Favorites)
	assert.Equal(t, 1, store.saveCalls)
}

func TestSession_ToggleFavoriteReflectsMembership(t *testing.T) {
	repo := &MockQueryRepository{}
	s := newSession(repo, &MockFavoritesStore{})

	_, err := s.Search(context.Background(), "Paris")
	require.NoError(t, err)
	assert.False(t, s.Snapshot().IsFavorite)

	require.NoError(t, s.ToggleFavorite(false))
	assert.True(t, s.Snapshot().IsFavorite)

	// second toggle is a removal and needs the confirmation gate
	err = s.ToggleFavorite(false)
	assert.ErrorIs(t, err, models.ErrConfirmationRequired)
	assert.True(t, s.Snapshot().IsFavorite)

	require.NoError(t, s.ToggleFavorite(true))
	assert.False(t, s.Snapshot().IsFavorite)
}

func TestSession_PersistFailureKeepsMemory(t *testing.T) {
	store := &MockFavoritesStore{saveErr: errors.Wrap(models.ErrPersist, "disk full")}
	s := newSession(&MockQueryRepository{}, store)

	require.NoError(t, s.AddFavorite("Paris"))

	// in-memory list diverges from storage until next load; that is accepted
	assert.Equal(t, []string{"Paris"}, s.Snapshot().Favorites)
	assert.Nil(t, store.LastSaved())
}

func TestSession_SelectFavoriteSearches(t *testing.T) {
	repo := &MockQueryRepository{}
	store := &MockFavoritesStore{initial: []string{"Paris"}}
	s := newSession(repo, store)
	s.Start(context.Background())

	snap, err := s.SelectFavorite(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, "Paris", snap.City)
	assert.True(t, snap.IsFavorite)
	assert.Equal(t, []string{"Paris", "Paris"}, repo.WeatherCalls())
}

func TestSession_DismissSuggestions(t *testing.T) {
	repo := &MockQueryRepository{}
	s := newSession(repo, &MockFavoritesStore{})

	s.Input("Lond")
	time.Sleep(100 * time.Millisecond)
	require.NotEmpty(t, s.Snapshot().Suggestions)

	s.DismissSuggestions()
	assert.Empty(t, s.Snapshot().Suggestions)
}
