package cmd

import (
	"fmt"

	"github.com/cookmaa/probe/config"
	"github.com/cookmaa/probe/internal/harness"
	"github.com/cookmaa/probe/internal/report"
	"github.com/cookmaa/probe/internal/shell"
	"github.com/cookmaa/probe/util/conf"
	"github.com/cookmaa/probe/util/logging"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// cliConfigMap maps cli flag names to config keys.
var cliConfigMap = map[string]string{
	"config":              "config_file",
	"target":              "harness.target",
	"health-timeout":      "harness.health_timeout",
	"generate-timeout":    "harness.generate_timeout",
	"servings":            "harness.target_servings",
	"url":                 "harness.fixtures",
	"preview":             "report.preview_count",
	"workbook":            "report.workbook",
	"no-color":            "report.no_color",
	"strict":              "report.strict",
	"fail-on-timeout":     "report.fail_on_timeout",
	"host":                "http.host",
	"port":                "http.port",
	"h2c":                 "http.h2c",
	"delay":               "stub.delay",
	"fail-status":         "stub.fail_status",
	"lambda-proxy-source": "lambda.proxy_source",
}

// harnessFlags are shared by all commands that run tests. Defaults
// live in the config, so the flags only override when set.
func harnessFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "target",
			Aliases:  []string{"t"},
			Usage:    "the backend to test, a configured target name or a base url. (default: production)",
			Category: "harness",
		},
		&cli.DurationFlag{
			Name:     "health-timeout",
			Usage:    "the health check timeout, at most 10s. (default: 10s)",
			Category: "harness",
		},
		&cli.DurationFlag{
			Name:     "generate-timeout",
			Usage:    "the recipe generation timeout. (default: 5m)",
			Category: "harness",
		},
		&cli.IntFlag{
			Name:     "servings",
			Aliases:  []string{"s"},
			Usage:    "the target servings sent with each request. (default: 4)",
			Category: "harness",
		},
		&cli.IntFlag{
			Name:     "preview",
			Usage:    "the number of ingredients to preview per recipe. (default: 3)",
			Category: "report",
		},
		&cli.PathFlag{
			Name:     "workbook",
			Aliases:  []string{"o"},
			Usage:    "also write the results to an .xlsx workbook.",
			Category: "report",
		},
		&cli.BoolFlag{
			Name:     "no-color",
			Usage:    "disable colored output.",
			Category: "report",
			EnvVars:  []string{"NO_COLOR"},
		},
		&cli.BoolFlag{
			Name:     "strict",
			Usage:    "exit with status 1 unless all tests passed.",
			Category: "report",
		},
		&cli.BoolFlag{
			Name:     "fail-on-timeout",
			Usage:    "count timeouts as failures in strict mode.",
			Category: "report",
		},
	}
}

// parseConfig layers defaults, the config file, env vars and the
// flags set on the command.
func parseConfig(ctx *cli.Context) (config.Config, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:       ctx,
		CliMap:    cliConfigMap,
		Defaults:  config.DefaultConfig,
		EnvPrefix: config.EnvPrefix,
		FileName:  ctx.Path("config"),
		Log:       log,
	})
	if err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}

	// make the config available to nested actions
	ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

	return cfg, nil
}

// suiteFunc selects the cases of a command.
type suiteFunc func(cfg config.Config, baseURL string) harness.Suite

// harnessAction runs the suite built by fn against the configured
// target and reports the results.
func harnessAction(fn suiteFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		log, err := logging.LoggerFromContext(ctx.Context)
		if err != nil {
			return err
		}

		cfg, err := parseConfig(ctx)
		if err != nil {
			return err
		}

		baseURL, err := cfg.Harness.ResolveTarget("")
		if err != nil {
			return err
		}

		h, err := harness.New(harness.Params{
			Config:       cfg.Harness,
			PreviewCount: cfg.Report.PreviewCount,
			Log:          log,
		})
		if err != nil {
			return err
		}

		run := h.RunSuite(ctx.Context, fn(cfg, baseURL))

		reporter := report.New(report.Params{
			Config: cfg.Report,
			Out:    ctx.App.Writer,
			Log:    log,
		})

		summary, err := reporter.Report(run)
		if err != nil {
			return err
		}

		if n := report.CaptureFailures(sentry.CurrentHub(), run); n > 0 {
			log.Debug("captured failures", zap.Int("count", n))
		}

		if cfg.Report.Strict && !summary.OK(cfg.Report.FailOnTimeout) {
			return shell.NewExitError(1)
		}

		return nil
	}
}
