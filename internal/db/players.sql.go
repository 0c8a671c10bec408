package db

import (
	"context"
	"time"
)

const listPlayers = `
SELECT id, name, created_at
FROM players
ORDER BY name
`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		var i Player
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
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

const getPlayer = `
SELECT id, name, created_at
FROM players
WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	var i Player
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const insertPlayer = `
INSERT INTO players (id, name, created_at)
VALUES (?, ?, ?)
`

type InsertPlayerParams struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (q *Queries) InsertPlayer(ctx context.Context, arg InsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, insertPlayer, arg.ID, arg.Name, arg.CreatedAt)
	return err
}
