package db

import (
	"context"
	"time"
)

const listTeams = `
SELECT id, name, league, stars, overall, attack, midfield, defend, created_at, updated_at
FROM teams
ORDER BY overall DESC, name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		var i Team
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.League,
			&i.Stars,
			&i.Overall,
			&i.Attack,
			&i.Midfield,
			&i.Defend,
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

const getTeam = `
SELECT id, name, league, stars, overall, attack, midfield, defend, created_at, updated_at
FROM teams
WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.League,
		&i.Stars,
		&i.Overall,
		&i.Attack,
		&i.Midfield,
		&i.Defend,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertTeam = `
INSERT INTO teams (id, name, league, stars, overall, attack, midfield, defend, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    league = excluded.league,
    stars = excluded.stars,
    overall = excluded.overall,
    attack = excluded.attack,
    midfield = excluded.midfield,
    defend = excluded.defend,
    updated_at = excluded.updated_at
`

type UpsertTeamParams struct {
	ID        string
	Name      string
	League    string
	Stars     float64
	Overall   int64
	Attack    int64
	Midfield  int64
	Defend    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) UpsertTeam(ctx context.Context, arg UpsertTeamParams) error {
	_, err := q.db.ExecContext(ctx, upsertTeam,
		arg.ID,
		arg.Name,
		arg.League,
		arg.Stars,
		arg.Overall,
		arg.Attack,
		arg.Midfield,
		arg.Defend,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
