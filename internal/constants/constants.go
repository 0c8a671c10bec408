package constants

import "time"

const (
	DatabaseTimeout  = 5 * time.Second
	RequestTimeout   = 30 * time.Second
	CatalogTimeout   = 10 * time.Second
	PublishTimeout   = 3 * time.Second
	RedisDialTimeout = 5 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// RecencyWindowDays caps how far back recency weights look.
	RecencyWindowDays = 30
	MaxOverall        = 99
	MaxStars          = 5.0
)

const (
	ScopeAll     = "all"
	ScopeToday   = "today"
	ScopeVersion = "version"
)
