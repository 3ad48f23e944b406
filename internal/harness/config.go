package harness

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	// MaxHealthTimeout caps the health check timeout.
	MaxHealthTimeout = 10 * time.Second

	DefaultGenerateTimeout = 5 * time.Minute
	DefaultTargetServings  = 4
)

var ErrUnknownTarget = errors.New("unknown target")

// Config is the harness configuration.
type Config struct {
	// Targets maps target names to backend base urls.
	Targets map[string]string `conf:"targets"`

	// Target is the selected target name or an absolute base url.
	Target string `conf:"target"`

	// HealthTimeout is the timeout for the health check, at most 10s.
	HealthTimeout time.Duration `conf:"health_timeout"`

	// GenerateTimeout is the timeout for recipe generation. Video
	// analysis can legitimately take minutes.
	GenerateTimeout time.Duration `conf:"generate_timeout"`

	// TargetServings is sent with every generate-recipe request.
	TargetServings int `conf:"target_servings"`

	// Fixtures are the video urls used by generate and run.
	Fixtures []string `conf:"fixtures"`
}

// DefaultConfig holds the harness defaults, keyed relative to the
// harness namespace.
var DefaultConfig = map[string]any{
	"targets.production": "https://cookmaa-backend-production.up.railway.app",
	"targets.local":      "http://localhost:8000",
	"target":             "production",
	"health_timeout":     MaxHealthTimeout,
	"generate_timeout":   DefaultGenerateTimeout,
	"target_servings":    DefaultTargetServings,
	"fixtures":           []string{"https://www.youtube.com/watch?v=KTCXuWOlspc"},
}

// ResolveTarget returns the base url for a target name. Absolute
// http(s) urls are accepted as-is.
func (c Config) ResolveTarget(target string) (string, error) {
	if target == "" {
		target = c.Target
	}

	if base, ok := c.Targets[target]; ok {
		return strings.TrimRight(base, "/"), nil
	}

	if u, err := url.Parse(target); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return strings.TrimRight(target, "/"), nil
	}

	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	return "", fmt.Errorf("%w %q (known: %s)", ErrUnknownTarget, target, strings.Join(names, ", "))
}

func (c Config) healthTimeout() time.Duration {
	if c.HealthTimeout <= 0 || c.HealthTimeout > MaxHealthTimeout {
		return MaxHealthTimeout
	}
	return c.HealthTimeout
}

func (c Config) generateTimeout() time.Duration {
	if c.GenerateTimeout <= 0 {
		return DefaultGenerateTimeout
	}
	return c.GenerateTimeout
}

func (c Config) targetServings(servings int) int {
	if servings > 0 {
		return servings
	}
	if c.TargetServings > 0 {
		return c.TargetServings
	}
	return DefaultTargetServings
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
