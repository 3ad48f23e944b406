package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ResolveTarget(t *testing.T) {
	cfg := Config{
		Target: "production",
		Targets: map[string]string{
			"production": "https://backend.example.com/",
			"local":      "http://localhost:8000",
		},
	}

	tests := []struct {
		target string
		want   string
	}{
		{"", "https://backend.example.com"},
		{"production", "https://backend.example.com"},
		{"local", "http://localhost:8000"},
		{"http://127.0.0.1:9000/", "http://127.0.0.1:9000"},
		{"https://staging.example.com", "https://staging.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := cfg.ResolveTarget(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_ResolveTarget_Unknown(t *testing.T) {
	cfg := Config{Targets: map[string]string{"local": "http://localhost:8000"}}

	for _, target := range []string{"staging", "ftp://example.com", "localhost:8000"} {
		t.Run(target, func(t *testing.T) {
			_, err := cfg.ResolveTarget(target)
			assert.ErrorIs(t, err, ErrUnknownTarget)
			assert.Contains(t, err.Error(), "local")
		})
	}
}

func TestConfig_Timeouts(t *testing.T) {
	assert.Equal(t, MaxHealthTimeout, Config{}.healthTimeout())
	assert.Equal(t, MaxHealthTimeout, Config{HealthTimeout: time.Minute}.healthTimeout())
	assert.Equal(t, 3*time.Second, Config{HealthTimeout: 3 * time.Second}.healthTimeout())

	assert.Equal(t, DefaultGenerateTimeout, Config{}.generateTimeout())
	assert.Equal(t, time.Second, Config{GenerateTimeout: time.Second}.generateTimeout())
}

func TestConfig_TargetServings(t *testing.T) {
	assert.Equal(t, 6, Config{TargetServings: 2}.targetServings(6))
	assert.Equal(t, 2, Config{TargetServings: 2}.targetServings(0))
	assert.Equal(t, DefaultTargetServings, Config{}.targetServings(-1))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://host/health", joinURL("http://host/", "/health"))
	assert.Equal(t, "http://host/api/health", joinURL("http://host/api", "health"))
}
