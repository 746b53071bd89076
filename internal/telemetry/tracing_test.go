package telemetry

import (
	"context"
	"testing"

	"chores-app-go/internal/config"
	"github.com/stretchr/testify/require"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracingEnabled(t *testing.T) {
	cfg := config.TracingConfig{Endpoint: "127.0.0.1:4318", ServiceName: "chores-app", SampleRatio: 0.5}

	shutdown, err := InitTracing(context.Background(), cfg, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
