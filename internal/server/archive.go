package server

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parlorgames/clueless/internal/clueless"
)

var ErrNotFound = errors.New("not found")

// MatchRecord is one finished game as stored in the archive.
type MatchRecord struct {
	ID              string `json:"id"`
	WinnerPlayer    string `json:"winnerPlayer"`
	WinnerSuspect   string `json:"winnerSuspect"`
	SolutionSuspect string `json:"solutionSuspect"`
	SolutionWeapon  string `json:"solutionWeapon"`
	SolutionRoom    string `json:"solutionRoom"`
	PlayerCount     int    `json:"playerCount"`
	StartedAt       string `json:"startedAt"`
	EndedAt         string `json:"endedAt"`
}

// Archive persists finished matches. The rules engine knows nothing about
// it; the server records a result after observing the game end.
type Archive interface {
	RecordMatch(ctx context.Context, rec MatchRecord) error
	ListMatches(ctx context.Context) ([]MatchRecord, error)
	DeleteMatch(ctx context.Context, id string) error
}

// SQLiteArchive implements Archive on the libSQL database.
type SQLiteArchive struct {
	db *sql.DB
}

func NewSQLiteArchive(db *sql.DB) *SQLiteArchive {
	return &SQLiteArchive{db: db}
}

func (a *SQLiteArchive) RecordMatch(ctx context.Context, rec MatchRecord) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO matches (
			id, winner_player, winner_suspect,
			solution_suspect, solution_weapon, solution_room,
			player_count, started_at, ended_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.WinnerPlayer, rec.WinnerSuspect,
		rec.SolutionSuspect, rec.SolutionWeapon, rec.SolutionRoom,
		rec.PlayerCount, rec.StartedAt, rec.EndedAt)
	return err
}

func (a *SQLiteArchive) ListMatches(ctx context.Context) ([]MatchRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, winner_player, winner_suspect,
			solution_suspect, solution_weapon, solution_room,
			player_count, started_at, ended_at
		FROM matches
		ORDER BY ended_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(
			&rec.ID, &rec.WinnerPlayer, &rec.WinnerSuspect,
			&rec.SolutionSuspect, &rec.SolutionWeapon, &rec.SolutionRoom,
			&rec.PlayerCount, &rec.StartedAt, &rec.EndedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, rec)
	}
	return matches, rows.Err()
}

func (a *SQLiteArchive) DeleteMatch(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// matchRecord builds the archive row for an ended game. Must run under the
// instance lock.
func matchRecord(in *Instance, g *clueless.Game) *MatchRecord {
	winner := g.Winner()
	solution, ok := g.Solution()
	if winner == nil || !ok {
		return nil
	}
	return &MatchRecord{
		ID:              in.ID,
		WinnerPlayer:    winner.ID,
		WinnerSuspect:   winner.Suspect,
		SolutionSuspect: solution.Suspect,
		SolutionWeapon:  solution.Weapon,
		SolutionRoom:    solution.Room,
		PlayerCount:     len(g.Roster().Humans()),
		StartedAt:       in.started.Format(time.RFC3339Nano),
		EndedAt:         time.Now().UTC().Format(time.RFC3339Nano),
	}
}
