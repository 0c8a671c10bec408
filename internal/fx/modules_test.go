package fx

import (
	"testing"

	"matchday-tracker/internal/server"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestModuleGraph(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Invoke(func(*server.TrackerServer) {}),
		fx.NopLogger,
	)
	require.NoError(t, err)
}
