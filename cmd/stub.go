package cmd

import (
	"os"

	"github.com/cookmaa/probe/app"
	"github.com/cookmaa/probe/app/lambda"
	"github.com/cookmaa/probe/app/standalone"
	"github.com/cookmaa/probe/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	stubCmdDescription = `The stub command starts a local stand-in for the recipe
backend. It answers GET /health and POST /generate-recipe
with a canned recipe, optionally after a delay or with an
error status, so the harness can be exercised offline.

If the AWS_LAMBDA_RUNTIME_API environment variable is set,
the stub is served through the AWS Lambda runtime instead
of the http server.

The command blocks until interrupted.`
	stubCmd = &cli.Command{
		Name:        "stub",
		Usage:       "Start a stub recipe backend.",
		Description: stubCmdDescription,
		Action:      stubAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on. (default: localhost)",
				Category: "http",
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on. (default: 8000)",
				Category: "http",
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Category: "http",
			},
			&cli.DurationFlag{
				Name:     "delay",
				Usage:    "How long to take before answering generate-recipe.",
				Category: "stub",
			},
			&cli.IntFlag{
				Name:     "fail-status",
				Usage:    "Answer generate-recipe with this status instead of a recipe.",
				Category: "stub",
			},
			&cli.StringFlag{
				Name:     "lambda-proxy-source",
				Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
				EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
				Category: "lambda",
			},
		},
	}
)

func stubAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	cfg, err := parseConfig(ctx)
	if err != nil {
		return err
	}

	shell, err := app.New(ctx)
	if err != nil {
		return err
	}

	if isAWSLambda() {
		log.Info("detected AWS Lambda environment",
			zap.Stringer("proxy_source", cfg.Lambda.ProxySource))
		return shell.Run(ctx.Context, lambda.Module(cfg.Lambda, cfg.Stub))
	}

	log.Info("starting stub backend",
		zap.Duration("delay", cfg.Stub.Delay),
		zap.Int("fail_status", cfg.Stub.FailStatus))

	return shell.Run(ctx.Context, standalone.Module(standalone.Config{
		Http: cfg.Http,
		Stub: cfg.Stub,
	}))
}

func isAWSLambda() bool {
	env, ok := os.LookupEnv("AWS_LAMBDA_RUNTIME_API")
	return ok && env != ""
}

func init() {
	rootApp.Commands = append(rootApp.Commands, stubCmd)
}
