package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal(255, config.MaxEntries)
	req.Equal(255, config.MaxMessageLen)
	req.Equal(200*time.Millisecond, config.RestartInterval)
	req.True(config.EnableHTTP)
	req.Equal("localhost:8080", config.GrpcAddress())
	req.Equal("localhost:8081", config.HTTPAddress())
}

func TestLoadConfig_From_Environment(t *testing.T) {
	req := require.New(t)
	t.Setenv("GRPC_HOST", "0.0.0.0")
	t.Setenv("GRPC_PORT", "9000")
	t.Setenv("MAX_ENTRIES", "16")
	t.Setenv("ENABLE_HTTP", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal("0.0.0.0:9000", config.GrpcAddress())
	req.Equal(16, config.MaxEntries)
	req.False(config.EnableHTTP)
	req.Equal(time.Second, config.ShutdownTimeout)
}

func TestLoadConfig_Rejects_Invalid_Values(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero capacity", key: "MAX_ENTRIES", value: "0"},
		{name: "negative length", key: "MAX_MESSAGE_LEN", value: "-1"},
		{name: "port out of range", key: "HTTP_PORT", value: "70000"},
		{name: "not a number", key: "GRPC_PORT", value: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()

			require.Error(t, err)
		})
	}
}
