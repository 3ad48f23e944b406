package cmd

import (
	"github.com/cookmaa/probe/config"
	"github.com/cookmaa/probe/internal/harness"
	"github.com/urfave/cli/v2"
)

var (
	healthCmdDescription = `The health command sends GET /health to the target backend
and checks that it answers 200 with a JSON body. The request
times out after at most 10 seconds.`
	healthCmd = &cli.Command{
		Name:        "health",
		Usage:       "Check the health endpoint of the backend.",
		Description: healthCmdDescription,
		Action:      harnessAction(healthSuite),
		Flags:       harnessFlags(),
	}
)

func healthSuite(cfg config.Config, baseURL string) harness.Suite {
	return harness.Suite{
		Target:       cfg.Harness.Target,
		BaseURL:      baseURL,
		SkipGenerate: true,
	}
}

func init() {
	rootApp.Commands = append(rootApp.Commands, healthCmd)
}
