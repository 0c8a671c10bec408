package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DEFAULT_MAX_RATING_GAP", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "matchday.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "Nations", cfg.Matchmaking.NationCategory)
	assert.Equal(t, -1, cfg.Matchmaking.MaxRatingGap)
	assert.Equal(t, 0, cfg.Matchmaking.MinOverall)
	assert.Equal(t, 99, cfg.Matchmaking.MaxOverall)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEFAULT_MAX_RATING_GAP", "5")
	t.Setenv("MIN_OVERALL", "70")
	t.Setenv("MAX_OVERALL", "90")
	t.Setenv("MIN_STARS", "3.5")
	t.Setenv("MATCHMAKING_SEED", "42")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Matchmaking.MaxRatingGap)
	assert.Equal(t, 70, cfg.Matchmaking.MinOverall)
	assert.Equal(t, 90, cfg.Matchmaking.MaxOverall)
	assert.Equal(t, 3.5, cfg.Matchmaking.MinStars)
	assert.Equal(t, uint64(42), cfg.Matchmaking.Seed)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_MAX_RATING_GAP": "wide",
		"MIN_STARS":              "many",
		"MATCHMAKING_SEED":       "-1",
		"TIMEZONE":               "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(zerolog.Nop())
			assert.Error(t, err)
		})
	}

	t.Run("inverted bounds", func(t *testing.T) {
		t.Setenv("MIN_OVERALL", "90")
		t.Setenv("MAX_OVERALL", "80")
		_, err := Load(zerolog.Nop())
		assert.Error(t, err)
	})
}
