package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"matchday-tracker/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath     string
	ServerPort string
	LogLevel   string

	RedisURL          string
	MatchEventsStream string

	CatalogURL    string
	CatalogAPIKey string

	Matchmaking Matchmaking
	Location    *time.Location
}

// Matchmaking holds the defaults for the eligible pool and the engine. A
// request may override the pool bounds and the rating gap.
type Matchmaking struct {
	NationCategory string
	// MaxRatingGap below zero means no limit.
	MaxRatingGap int
	MinOverall   int
	MaxOverall   int
	MinStars     float64
	// Seed of zero seeds from the clock.
	Seed uint64
}

func Load(log zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:            getEnv("DB_PATH", "matchday.db"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisURL:          getEnv("REDIS_URL", ""),
		MatchEventsStream: getEnv("MATCH_EVENTS_STREAM", "matches.events"),
		CatalogURL:        getEnv("CATALOG_URL", ""),
		CatalogAPIKey:     getEnv("CATALOG_API_KEY", ""),
		Matchmaking: Matchmaking{
			NationCategory: getEnv("NATION_CATEGORY", "Nations"),
		},
	}

	var err error
	if cfg.Matchmaking.MaxRatingGap, err = getInt("DEFAULT_MAX_RATING_GAP", -1); err != nil {
		return nil, err
	}
	if cfg.Matchmaking.MinOverall, err = getInt("MIN_OVERALL", 0); err != nil {
		return nil, err
	}
	if cfg.Matchmaking.MaxOverall, err = getInt("MAX_OVERALL", 99); err != nil {
		return nil, err
	}
	if cfg.Matchmaking.MinStars, err = getFloat("MIN_STARS", 0); err != nil {
		return nil, err
	}
	if cfg.Matchmaking.Seed, err = getUint("MATCHMAKING_SEED", 0); err != nil {
		return nil, err
	}

	if cfg.Matchmaking.MinOverall > cfg.Matchmaking.MaxOverall {
		return nil, fmt.Errorf("MIN_OVERALL (%d) is above MAX_OVERALL (%d)", cfg.Matchmaking.MinOverall, cfg.Matchmaking.MaxOverall)
	}

	tz := getEnv("TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	logger.ApplyLevel(cfg.LogLevel)

	log.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("events_enabled", cfg.RedisURL != "").
		Bool("catalog_enabled", cfg.CatalogURL != "").
		Str("nation_category", cfg.Matchmaking.NationCategory).
		Int("max_rating_gap", cfg.Matchmaking.MaxRatingGap).
		Str("timezone", cfg.Location.String()).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getUint(key string, fallback uint64) (uint64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

var Module = fx.Provide(Load)
