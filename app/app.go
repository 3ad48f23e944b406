package app

import (
	"github.com/cookmaa/probe/config"
	"github.com/cookmaa/probe/internal/shell"
	"github.com/cookmaa/probe/util/conf"
	"github.com/cookmaa/probe/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

// New creates the shell that runs the stub backend, using the logger
// and config stored in the cli context.
func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	cfg, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(cfg),
	)

	return shell.New(log, sharedModule), nil
}
