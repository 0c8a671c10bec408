package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"matchday-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"data":[{"id":"rma","name":"Real Madrid","league":"La Liga","stars":5,"overall":86,"attack":88,"midfield":85,"defend":84}]}`))
	}))
	defer srv.Close()

	client := NewCatalogClient(&config.Config{CatalogURL: srv.URL, CatalogAPIKey: "secret"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.GetTeams(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Real Madrid", resp.Data[0].Name)
	assert.Equal(t, 86, resp.Data[0].Overall)
}

func TestGetTeamsErrors(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		client := NewCatalogClient(&config.Config{})
		assert.False(t, client.Enabled())
		_, err := client.GetTeams(context.Background())
		assert.ErrorIs(t, err, ErrCatalogDisabled)
	})

	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewCatalogClient(&config.Config{CatalogURL: srv.URL}).GetTeams(context.Background())
		assert.ErrorContains(t, err, "502")
	})

	t.Run("bad body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [`))
		}))
		defer srv.Close()

		_, err := NewCatalogClient(&config.Config{CatalogURL: srv.URL}).GetTeams(context.Background())
		assert.Error(t, err)
	})
}
