package config

import (
	"github.com/cookmaa/probe/app/lambda"
	"github.com/cookmaa/probe/handler"
	"github.com/cookmaa/probe/internal/harness"
	"github.com/cookmaa/probe/internal/report"
	"github.com/cookmaa/probe/internal/server"
	"github.com/cookmaa/probe/util/conf"
)

// EnvPrefix is the prefix of all config env vars. Nested keys are
// separated by a double underscore, e.g. PROBE_HARNESS__TARGET.
const EnvPrefix = "PROBE_"

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Harness configures targets, timeouts and fixtures
	Harness harness.Config `conf:"harness"`

	// Report configures output and the exit policy
	Report report.Config `conf:"report"`

	// Http is the listener of the stub backend
	Http server.HttpConfig `conf:"http"`

	// Stub configures the stub backend's behaviour
	Stub handler.Config `conf:"stub"`

	// Lambda configures the stub backend on AWS Lambda
	Lambda lambda.Config `conf:"lambda"`
}

var DefaultConfig = join(
	conf.DefaultConfig{
		"log_level":  "info",
		"log_format": "production",
	},
	conf.MergeDefaults("harness", harness.DefaultConfig),
	conf.MergeDefaults("report", report.DefaultConfig),
	conf.MergeDefaults("http", map[string]any{
		"host": "localhost",
		"port": 8000,
		"h2c":  false,
	}),
	conf.MergeDefaults("stub", map[string]any{
		"delay":       0,
		"fail_status": 0,
	}),
	conf.MergeDefaults("lambda", map[string]any{
		"proxy_source": lambda.ProxySourceApiGatewayV2.String(),
	}),
)

func join(defaults ...map[string]any) conf.DefaultConfig {
	joined := conf.DefaultConfig{}
	for _, m := range defaults {
		for key, val := range m {
			joined[key] = val
		}
	}
	return joined
}
