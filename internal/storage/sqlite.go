// Package storage provides SQLite-based persistence for finished episodes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for episode persistence.
type Store struct {
	db *sql.DB
}

// Episode is one finished episode.
type Episode struct {
	ID           int64
	EpisodeID    string // UUID assigned by the environment
	Policy       string
	Outcome      string // "win", "death" or "timeout"
	Cause        string
	Reward       float64
	Ticks        int
	HighestY     float64
	ZonesVisited int
	Seed         int64
	Difficulty   float64
	CreatedAt    time.Time
}

// Stats aggregates episodes of one policy, or of all policies.
type Stats struct {
	Episodes   int
	Wins       int
	Deaths     int
	Timeouts   int
	MeanReward float64
	BestReward float64
	MeanTicks  float64
}

// WinRate returns wins per episode, or 0 with no episodes.
func (s Stats) WinRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Episodes)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			episode_id TEXT NOT NULL UNIQUE,
			policy TEXT NOT NULL,
			outcome TEXT NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			reward REAL NOT NULL,
			ticks INTEGER NOT NULL,
			highest_y REAL NOT NULL,
			zones_visited INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_policy ON episodes(policy);
		CREATE INDEX IF NOT EXISTS idx_episodes_best ON episodes(policy, reward DESC);
		CREATE INDEX IF NOT EXISTS idx_episodes_created ON episodes(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEpisode records a finished episode and returns its row ID.
// A zero CreatedAt is set to the current time.
func (s *Store) SaveEpisode(ep Episode) (int64, error) {
	if ep.EpisodeID == "" {
		return 0, errors.New("storage: episode has no ID")
	}
	if ep.CreatedAt.IsZero() {
		ep.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (episode_id, policy, outcome, cause, reward, ticks, highest_y, zones_visited, seed, difficulty, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ep.EpisodeID, ep.Policy, ep.Outcome, ep.Cause, ep.Reward, ep.Ticks,
		ep.HighestY, ep.ZonesVisited, ep.Seed, ep.Difficulty,
		ep.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const episodeColumns = `id, episode_id, policy, outcome, cause, reward, ticks,
	highest_y, zones_visited, seed, difficulty, created_at`

// RecentEpisodes returns the newest episodes first. An empty policy
// matches every policy.
func (s *Store) RecentEpisodes(policy string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryEpisodes(
		`SELECT `+episodeColumns+` FROM episodes
		 WHERE (? = '' OR policy = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		policy, policy, limit,
	)
}

// BestEpisodes returns the highest-reward episodes. An empty policy
// matches every policy.
func (s *Store) BestEpisodes(policy string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryEpisodes(
		`SELECT `+episodeColumns+` FROM episodes
		 WHERE (? = '' OR policy = ?)
		 ORDER BY reward DESC, id ASC
		 LIMIT ?`,
		policy, policy, limit,
	)
}

// EpisodeByID retrieves an episode by its UUID.
// Returns nil, nil if it does not exist.
func (s *Store) EpisodeByID(episodeID string) (*Episode, error) {
	eps, err := s.queryEpisodes(
		`SELECT `+episodeColumns+` FROM episodes WHERE episode_id = ?`,
		episodeID,
	)
	if err != nil {
		return nil, err
	}
	if len(eps) == 0 {
		return nil, nil
	}
	return &eps[0], nil
}

func (s *Store) queryEpisodes(query string, args ...any) ([]Episode, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var e Episode
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.EpisodeID, &e.Policy, &e.Outcome, &e.Cause, &e.Reward, &e.Ticks,
			&e.HighestY, &e.ZonesVisited, &e.Seed, &e.Difficulty, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// parseTime handles both time.Time and the text layouts SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}

// Stats aggregates episodes. An empty policy matches every policy.
func (s *Store) Stats(policy string) (Stats, error) {
	var st Stats
	var meanReward, bestReward, meanTicks sql.NullFloat64
	var wins, deaths, timeouts sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'death' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'timeout' THEN 1 ELSE 0 END),
		        AVG(reward), MAX(reward), AVG(ticks)
		 FROM episodes
		 WHERE (? = '' OR policy = ?)`,
		policy, policy,
	).Scan(&st.Episodes, &wins, &deaths, &timeouts, &meanReward, &bestReward, &meanTicks)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.Wins = int(wins.Int64)
	st.Deaths = int(deaths.Int64)
	st.Timeouts = int(timeouts.Int64)
	st.MeanReward = meanReward.Float64
	st.BestReward = bestReward.Float64
	st.MeanTicks = meanTicks.Float64
	return st, nil
}

// ClearEpisodes deletes the episodes of a policy, or all episodes for an
// empty policy.
func (s *Store) ClearEpisodes(policy string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE (? = '' OR policy = ?)", policy, policy)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}
