package db

import (
	"database/sql"
	"time"
)

type Team struct {
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

type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Match struct {
	ID              string
	TeamAID         string
	TeamBID         string
	ScoreA          sql.NullInt64
	ScoreB          sql.NullInt64
	PenaltiesWinner sql.NullInt64
	// PlayedAt is kept as text; callers parse it.
	PlayedAt  string
	Version   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MatchPlayer struct {
	MatchID  string
	Side     int64
	PlayerID string
}
