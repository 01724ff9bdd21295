package storage

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"

	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

// favoritesKey is the single durable key the dashboard owns. Its value is a
// JSON-serialized array of favorite city strings.
const favoritesKey = "favorites"

// FavoritesStore persists the favorite-city list.
type FavoritesStore interface {
	// Load returns the stored list. An absent or corrupt value yields an
	// empty list; Load never fails.
	Load() []string

	// Save overwrites the stored list.
	Save(cities []string) error

	Close() error
}

// SQLiteFavorites implements FavoritesStore over a single-key kv table using
// the pure Go sqlite driver.
type SQLiteFavorites struct {
	db *sql.DB
	l  *observe.Logger
}

// NewSQLiteFavorites opens (or creates) the database at path and applies the
// minimal schema.
func NewSQLiteFavorites(path string, l *observe.Logger) (*SQLiteFavorites, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open favorites db")
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
        key TEXT PRIMARY KEY,
        value TEXT
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "apply favorites schema")
	}

	return &SQLiteFavorites{db: db, l: l}, nil
}

func (s *SQLiteFavorites) Load() []string {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, favoritesKey).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.l.Warning("failed to read favorites, starting empty", map[string]any{"err": err.Error()})
		}
		return []string{}
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		s.l.Warning("corrupt favorites value, starting empty", map[string]any{"err": err.Error()})
		return []string{}
	}

	return cities
}

func (s *SQLiteFavorites) Save(cities []string) error {
	raw, err := json.Marshal(cities)
	if err != nil {
		return errors.Wrapf(models.ErrPersist, "marshal favorites: %v", err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO kv(key, value) VALUES(?, ?)`, favoritesKey, string(raw))
	if err != nil {
		return errors.Wrapf(models.ErrPersist, "write favorites: %v", err)
	}

	return nil
}

func (s *SQLiteFavorites) Close() error {
	return s.db.Close()
}
