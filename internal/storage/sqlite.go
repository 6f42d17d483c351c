// Package storage provides SQLite-based persistence for level completions.
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

// Store manages the SQLite database connection for completion records.
type Store struct {
	db *sql.DB
}

// Completion is one solved level.
type Completion struct {
	ID        int64
	Pack      string
	LevelID   string
	Moves     int
	Solution  string
	Player    string
	CreatedAt time.Time
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	Pack         string
	LevelsSolved int
	Plays        int
	TotalMoves   int64
	LastPlayed   time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack TEXT NOT NULL,
			level_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			solution TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(pack, level_id, moves);
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

// SaveCompletion records a solved level.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	if c.Pack == "" || c.LevelID == "" {
		return 0, errors.New("storage: completion needs a pack and a level id")
	}
	result, err := s.db.Exec(
		"INSERT INTO completions (pack, level_id, moves, solution, player) VALUES (?, ?, ?, ?, ?)",
		c.Pack, c.LevelID, c.Moves, c.Solution, c.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopCompletions retrieves the N best completions of a level.
// Results are ordered by move count, earlier records first on ties.
func (s *Store) TopCompletions(pack, levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, pack, level_id, moves, solution, player, created_at
		 FROM completions
		 WHERE pack = ? AND level_id = ?
		 ORDER BY moves ASC, id ASC
		 LIMIT ?`,
		pack, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var c Completion
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Pack, &c.LevelID, &c.Moves, &c.Solution, &c.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestMoves returns the lowest move count per level of a pack.
// Levels never solved are absent from the map.
func (s *Store) BestMoves(pack string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(moves) FROM completions WHERE pack = ? GROUP BY level_id`,
		pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best moves: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var id string
		var moves int
		if err := rows.Scan(&id, &moves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[id] = moves
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

// BestMove returns the lowest move count for one level, or 0 if unsolved.
func (s *Store) BestMove(pack, levelID string) (int, error) {
	var moves sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(moves) FROM completions WHERE pack = ? AND level_id = ?",
		pack, levelID,
	).Scan(&moves)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best move: %w", err)
	}
	if !moves.Valid {
		return 0, nil
	}
	return int(moves.Int64), nil
}

// GetPackStats retrieves aggregated statistics for a pack.
func (s *Store) GetPackStats(pack string) (*PackStats, error) {
	stats := &PackStats{Pack: pack}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT level_id), COUNT(*), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM completions WHERE pack = ?`,
		pack,
	).Scan(&stats.LevelsSolved, &stats.Plays, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllPackStats retrieves statistics for every pack that has completions.
func (s *Store) GetAllPackStats() (map[string]*PackStats, error) {
	rows, err := s.db.Query(
		`SELECT pack, COUNT(DISTINCT level_id), COUNT(*), SUM(moves), MAX(created_at)
		 FROM completions
		 GROUP BY pack`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PackStats)
	for rows.Next() {
		var ps PackStats
		var lastPlayed any
		if err := rows.Scan(&ps.Pack, &ps.LevelsSolved, &ps.Plays, &ps.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.Pack] = &ps
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearPack deletes all completions of the given pack.
func (s *Store) ClearPack(pack string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE pack = ?", pack)
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
