package daily

import (
	"context"
	"database/sql"
)

// Result is one finished round.
type Result struct {
	GameID  string `json:"gameId"`
	Round   int    `json:"round"`
	Date    string `json:"date"`
	Winner  string `json:"winner"`
	Score   int    `json:"score"`
	Players int    `json:"players"`
	Phrase  string `json:"phrase"`
	Daily   bool   `json:"daily"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records a round; a duplicate (game_id, round) is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(game_id, round, date, winner, score, players, phrase, daily)
		 VALUES(?,?,?,?,?,?,?,?)`,
		r.GameID, r.Round, r.Date, r.Winner, r.Score, r.Players, r.Phrase, r.Daily,
	)
	return err
}

type LBRow struct {
	Winner string `json:"winner"`
	Score  int    `json:"score"`
	Phrase string `json:"phrase"`
	Daily  bool   `json:"daily"`
}

// Leaderboard returns the top winning scores for a date.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner, score, phrase, daily
		 FROM results
		 WHERE date=?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Winner, &r.Score, &r.Phrase, &r.Daily); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
