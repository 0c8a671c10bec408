package events

import (
	"context"
	"testing"

	"matchday-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewWithoutRedis(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	pub, err := New(lc, &config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, pub)
	assert.NoError(t, pub.Publish(context.Background(), Event{Kind: MatchRecorded}))
}

func TestNewRejectsBadURL(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	_, err := New(lc, &config.Config{RedisURL: "not a url"}, zerolog.Nop())
	assert.Error(t, err)
}
