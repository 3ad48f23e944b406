package cmd

import (
	"github.com/cookmaa/probe/config"
	"github.com/cookmaa/probe/internal/harness"
	"github.com/urfave/cli/v2"
)

var (
	runCmdDescription = `The run command runs the whole suite: the health check,
followed by one recipe generation per configured fixture.
Tests run strictly one after another and are never retried.
A failing test does not stop the run.`
	runCmd = &cli.Command{
		Name:        "run",
		Usage:       "Run the health check and all recipe fixtures.",
		Description: runCmdDescription,
		Action:      harnessAction(runSuite),
		Flags:       harnessFlags(),
	}
)

func runSuite(cfg config.Config, baseURL string) harness.Suite {
	return harness.Suite{
		Target:         cfg.Harness.Target,
		BaseURL:        baseURL,
		Fixtures:       cfg.Harness.Fixtures,
		TargetServings: cfg.Harness.TargetServings,
	}
}

func init() {
	rootApp.Commands = append(rootApp.Commands, runCmd)
}
