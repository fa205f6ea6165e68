package observability

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"eduafri/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRatio(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SampleRatio(tt.in))
	}
}

func TestInitOTel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := config.AppConfig{Name: "eduafri", Env: "test"}

	t.Run("disabled returns a no-op shutdown", func(t *testing.T) {
		shutdown, err := InitOTel(context.Background(), logger, app, config.OtelConfig{Enabled: false})
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("unknown exporter", func(t *testing.T) {
		_, err := InitOTel(context.Background(), logger, app, config.OtelConfig{Enabled: true, Exporter: "zipkin"})
		assert.Error(t, err)
	})
}
