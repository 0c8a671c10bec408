package db

import (
	"context"
	"database/sql"
	"time"
)

const listMatches = `
SELECT id, team_a_id, team_b_id, score_a, score_b, penalties_winner, played_at, version, created_at, updated_at
FROM matches
ORDER BY played_at, created_at
`

func (q *Queries) ListMatches(ctx context.Context) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.TeamAID,
			&i.TeamBID,
			&i.ScoreA,
			&i.ScoreB,
			&i.PenaltiesWinner,
			&i.PlayedAt,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMatch = `
SELECT id, team_a_id, team_b_id, score_a, score_b, penalties_winner, played_at, version, created_at, updated_at
FROM matches
WHERE id = ?
`

func (q *Queries) GetMatch(ctx context.Context, id string) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.TeamAID,
		&i.TeamBID,
		&i.ScoreA,
		&i.ScoreB,
		&i.PenaltiesWinner,
		&i.PlayedAt,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertMatch = `
INSERT INTO matches (id, team_a_id, team_b_id, score_a, score_b, penalties_winner, played_at, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertMatchParams struct {
	ID              string
	TeamAID         string
	TeamBID         string
	ScoreA          sql.NullInt64
	ScoreB          sql.NullInt64
	PenaltiesWinner sql.NullInt64
	PlayedAt        string
	Version         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) InsertMatch(ctx context.Context, arg InsertMatchParams) error {
	_, err := q.db.ExecContext(ctx, insertMatch,
		arg.ID,
		arg.TeamAID,
		arg.TeamBID,
		arg.ScoreA,
		arg.ScoreB,
		arg.PenaltiesWinner,
		arg.PlayedAt,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateMatchScore = `
UPDATE matches
SET score_a = ?, score_b = ?, penalties_winner = ?, updated_at = ?
WHERE id = ?
`

type UpdateMatchScoreParams struct {
	ScoreA          sql.NullInt64
	ScoreB          sql.NullInt64
	PenaltiesWinner sql.NullInt64
	UpdatedAt       time.Time
	ID              string
}

func (q *Queries) UpdateMatchScore(ctx context.Context, arg UpdateMatchScoreParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMatchScore,
		arg.ScoreA,
		arg.ScoreB,
		arg.PenaltiesWinner,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMatch = `
DELETE FROM matches
WHERE id = ?
`

func (q *Queries) DeleteMatch(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMatch, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listMatchPlayers = `
SELECT match_id, side, player_id
FROM match_players
ORDER BY match_id, side, rowid
`

func (q *Queries) ListMatchPlayers(ctx context.Context) ([]MatchPlayer, error) {
	rows, err := q.db.QueryContext(ctx, listMatchPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchPlayer
	for rows.Next() {
		var i MatchPlayer
		if err := rows.Scan(&i.MatchID, &i.Side, &i.PlayerID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMatchPlayersByMatchID = `
SELECT match_id, side, player_id
FROM match_players
WHERE match_id = ?
ORDER BY side, rowid
`

func (q *Queries) GetMatchPlayersByMatchID(ctx context.Context, matchID string) ([]MatchPlayer, error) {
	rows, err := q.db.QueryContext(ctx, getMatchPlayersByMatchID, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchPlayer
	for rows.Next() {
		var i MatchPlayer
		if err := rows.Scan(&i.MatchID, &i.Side, &i.PlayerID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertMatchPlayer = `
INSERT OR IGNORE INTO match_players (match_id, side, player_id)
VALUES (?, ?, ?)
`

type InsertMatchPlayerParams struct {
	MatchID  string
	Side     int64
	PlayerID string
}

func (q *Queries) InsertMatchPlayer(ctx context.Context, arg InsertMatchPlayerParams) error {
	_, err := q.db.ExecContext(ctx, insertMatchPlayer, arg.MatchID, arg.Side, arg.PlayerID)
	return err
}

const deleteMatchPlayers = `
DELETE FROM match_players
WHERE match_id = ?
`

func (q *Queries) DeleteMatchPlayers(ctx context.Context, matchID string) error {
	_, err := q.db.ExecContext(ctx, deleteMatchPlayers, matchID)
	return err
}
