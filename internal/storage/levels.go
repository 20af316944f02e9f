package storage

import (
	"fmt"
	"time"
)

// LevelResult is the outcome of one finished puzzle.
type LevelResult struct {
	ID        int64
	GameID    string
	LevelID   string
	Score     int
	Perfect   bool
	Captured  int
	Escaped   int
	CreatedAt time.Time
}

// LevelBest summarises every attempt at one level.
type LevelBest struct {
	LevelID   string
	BestScore int
	Attempts  int
	Perfects  int
}

// SaveLevelResult records a finished puzzle.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelResult(r LevelResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_results (game_id, level_id, score, perfect, captured, escaped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.LevelID, r.Score, r.Perfect, r.Captured, r.Escaped,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LevelResults returns every result for one level, best first.
func (s *Store) LevelResults(gameID, levelID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, score, perfect, captured, escaped, created_at
		 FROM level_results
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID, levelID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.LevelID, &r.Score, &r.Perfect, &r.Captured, &r.Escaped, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan level result: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// BestLevelResults returns the best score, attempt count and perfect count
// for every level played in the given game, keyed by level ID.
func (s *Store) BestLevelResults(gameID string) (map[string]LevelBest, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MAX(score), COUNT(*), SUM(perfect)
		 FROM level_results
		 WHERE game_id = ?
		 GROUP BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best level results: %w", err)
	}
	defer rows.Close()

	best := make(map[string]LevelBest)
	for rows.Next() {
		var b LevelBest
		if err := rows.Scan(&b.LevelID, &b.BestScore, &b.Attempts, &b.Perfects); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best level result: %w", err)
		}
		best[b.LevelID] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return best, nil
}

// ClearLevelResults deletes all level results for the given game.
func (s *Store) ClearLevelResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM level_results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	return nil
}
