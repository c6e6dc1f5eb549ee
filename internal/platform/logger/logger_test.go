package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		expectErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "error", level: "error"},
		{name: "mixed case", level: "Debug"},
		{name: "invalid", level: "verbose", expectErr: true},
		{name: "empty", level: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	base := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := WithLogger(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))

	// Without an attached logger the default is returned.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.New(slog.NewTextHandler(os.Stderr, nil))

	assert.Same(t, def, FromContextOrDefault(context.Background(), def))

	attached := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := WithLogger(context.Background(), attached)
	assert.Same(t, attached, FromContextOrDefault(ctx, def))
}
