package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/internal/repositories"
	"github.com/Otigef/weather-dashboard/internal/storage"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

// Phase is the dashboard UI state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseContent Phase = "content"
	PhaseError   Phase = "error"
)

// SearchFailedMessage is the single user-facing message for failed searches.
const SearchFailedMessage = "Unable to fetch weather data. Please check the city name and try again."

const minSuggestionQueryLen = 3

// Session owns the dashboard state: current city, UI phase, suggestion box,
// favorites. All user actions and timers funnel through its methods; there is
// no other writer.
//
// Overlapping fetches are reconciled with generation counters: each explicit
// search bumps searchGen and each input keystroke bumps suggestGen, and every
// completion re-checks its generation under the lock before touching state.
// A completion that lost the race is discarded, never rendered.
type Session struct {
	mu    sync.Mutex
	repo  repositories.QueryRepository
	store storage.FavoritesStore
	l     *observe.Logger

	debounce        time.Duration
	refreshInterval time.Duration
	defaultCity     string

	phase        Phase
	currentCity  string
	report       models.WeatherReport
	hasReport    bool
	suggestions  []string
	favorites    []string
	errorMessage string

	searchGen  uint64
	suggestGen uint64

	debounceTimer *time.Timer
	pendingInput  string

	fetchCtx context.Context
}

// Options tunes the session timers; zero values fall back to the dashboard
// defaults.
type Options struct {
	Debounce        time.Duration
	RefreshInterval time.Duration
	DefaultCity     string
}

func New(repo repositories.QueryRepository, store storage.FavoritesStore, l *observe.Logger, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 15 * time.Minute
	}
	if opts.DefaultCity == "" {
		opts.DefaultCity = "London"
	}

	return &Session{
		repo:            repo,
		store:           store,
		l:               l,
		debounce:        opts.Debounce,
		refreshInterval: opts.RefreshInterval,
		defaultCity:     opts.DefaultCity,
		phase:           PhaseLoading,
		favorites:       []string{},
		fetchCtx:        context.Background(),
	}
}

// Snapshot is an immutable copy of the session state for rendering.
type Snapshot struct {
	Phase        Phase
	City         string
	Report       models.WeatherReport
	HasReport    bool
	Suggestions  []string
	Favorites    []string
	IsFavorite   bool
	ErrorMessage string
}

// Start loads the persisted favorites, kicks off the first search (first
// favorite, or the default city) and starts the background refresh loop.
// It blocks until the initial fetch settles.
func (s *Session) Start(ctx context.Context) Snapshot {
	favorites := s.store.Load()

	s.mu.Lock()
	s.favorites = favorites
	s.fetchCtx = ctx
	s.mu.Unlock()

	city := s.defaultCity
	if len(favorites) > 0 {
		city = favorites[0]
	}

	s.l.Info("session starting", map[string]any{
		"favorites": len(favorites),
		"city":      city,
	})

	go s.refreshLoop(ctx)

	snap, _ := s.Search(ctx, city)
	return snap
}

// Search is the explicit-search command: search button, Enter key, clicking a
// favorite or a suggestion. It transitions to Loading, invalidates any open
// suggestion box, fetches, and applies the result only if no newer search has
// started meanwhile. Returns an error only for empty input.
func (s *Session) Search(ctx context.Context, city string) (Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.snapshotLocked(), errors.New("city must not be empty")
	}

	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.suggestGen++ // a search supersedes any pending suggestion cycle
	s.suggestions = nil
	s.phase = PhaseLoading
	s.errorMessage = ""
	s.mu.Unlock()

	report, err := s.repo.FetchWeather(ctx, city)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.searchGen {
		// A newer search owns the UI now; this result is stale.
		s.l.Debug("discarding stale search result", map[string]any{"city": city})
		return s.snapshotLocked(), nil
	}

	if err != nil {
		s.l.Warning("search failed", map[string]any{"city": city, "err": err.Error()})
		s.phase = PhaseError
		s.errorMessage = SearchFailedMessage
		return s.snapshotLocked(), nil
	}

	s.currentCity = city
	s.report = report
	s.hasReport = true
	s.phase = PhaseContent

	return s.snapshotLocked(), nil
}

// Input feeds one autocomplete keystroke. The debounce timer restarts on
// every call; only the firing of the last timer issues a request.
func (s *Session) Input(partial string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingInput = partial
	s.suggestGen++
	gen := s.suggestGen

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		s.fireSuggestion(gen)
	})
}

func (s *Session) fireSuggestion(gen uint64) {
	s.mu.Lock()
	if gen != s.suggestGen {
		s.mu.Unlock()
		return
	}
	partial := s.pendingInput
	ctx := s.fetchCtx
	s.mu.Unlock()

	if len(strings.TrimSpace(partial)) < minSuggestionQueryLen {
		s.mu.Lock()
		if gen == s.suggestGen {
			s.suggestions = nil
		}
		s.mu.Unlock()
		return
	}

	suggestions, err := s.repo.FetchSuggestions(ctx, partial)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.suggestGen {
		// The input moved on while this request was in flight.
		return
	}

	if err != nil {
		// Suggestion failures are invisible: just hide the box.
		s.l.Debug("suggestion fetch failed", map[string]any{"err": err.Error()})
		s.suggestions = nil
		return
	}

	s.suggestions = suggestions
}

// DismissSuggestions hides the suggestion box (click outside) and invalidates
// any in-flight suggestion request.
func (s *Session) DismissSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestGen++
	s.suggestions = nil
}

// Refresh re-fetches the current city in the background. It never changes the
// UI phase, never surfaces an error, and never overwrites state belonging to
// a search that completed after it started.
func (s *Session) Refresh(ctx context.Context) {
	s.mu.Lock()
	city := s.currentCity
	gen := s.searchGen
	s.mu.Unlock()

	if city == "" {
		return
	}

	report, err := s.repo.FetchWeather(ctx, city)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.l.Warning("background refresh failed", map[string]any{"city": city, "err": err.Error()})
		return
	}

	if gen != s.searchGen || !strings.EqualFold(city, s.currentCity) {
		s.l.Debug("discarding stale refresh result", map[string]any{"city": city})
		return
	}

	s.report = report
	s.hasReport = true
}

func (s *Session) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// ToggleFavorite adds or removes the current city based on its membership.
// Removal goes through the confirmation gate.
func (s *Session) ToggleFavorite(confirmed bool) error {
	s.mu.Lock()
	city := s.currentCity
	s.mu.Unlock()

	if city == "" {
		return errors.New("no current city to toggle")
	}

	if s.IsFavorite(city) {
		return s.RemoveFavorite(city, confirmed)
	}
	return s.AddFavorite(city)
}

// AddFavorite appends the city unless an equal entry (case-insensitive)
// already exists. Idempotent.
func (s *Session) AddFavorite(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errors.New("city must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfFold(s.favorites, city) >= 0 {
		return nil
	}

	s.favorites = append(s.favorites, city)
	s.persistLocked()

	return nil
}

// RemoveFavorite removes the city (case-insensitive). Without confirmation it
// refuses with ErrConfirmationRequired; removing an absent city is a no-op.
func (s *Session) RemoveFavorite(city string, confirmed bool) error {
	if !confirmed {
		return models.ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfFold(s.favorites, city)
	if i < 0 {
		return nil
	}

	s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
	s.persistLocked()

	return nil
}

// SelectFavorite searches the clicked favorite; it behaves exactly like an
// explicit search.
func (s *Session) SelectFavorite(ctx context.Context, city string) (Snapshot, error) {
	return s.Search(ctx, city)
}

// IsFavorite reports case-insensitive membership.
func (s *Session) IsFavorite(city string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfFold(s.favorites, city) >= 0
}

// persistLocked writes the favorites through the store. A write failure is
// logged and the in-memory list is kept; memory and storage may diverge until
// the next load.
func (s *Session) persistLocked() {
	cities := make([]string, len(s.favorites))
	copy(cities, s.favorites)

	if err := s.store.Save(cities); err != nil {
		s.l.Warning("favorites not persisted", map[string]any{"err": err.Error()})
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:        s.phase,
		City:         s.currentCity,
		Report:       s.report,
		HasReport:    s.hasReport,
		Suggestions:  append([]string(nil), s.suggestions...),
		Favorites:    append([]string(nil), s.favorites...),
		IsFavorite:   indexOfFold(s.favorites, s.currentCity) >= 0,
		ErrorMessage: s.errorMessage,
	}
	return snap
}

// Stop cancels the pending debounce timer.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}

func indexOfFold(cities []string, city string) int {
	for i, c := range cities {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(city)) {
			return i
		}
	}
	return -1
}
