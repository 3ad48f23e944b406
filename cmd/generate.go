package cmd

import (
	"github.com/cookmaa/probe/config"
	"github.com/cookmaa/probe/internal/harness"
	"github.com/urfave/cli/v2"
)

var (
	generateCmdDescription = `The generate command asks the backend to generate a recipe
for each video url and validates the shape of every recipe.
Without --url, the configured fixtures are used.

Recipe generation analyses the whole video and can take
minutes, so the default timeout is generous.`
	generateCmd = &cli.Command{
		Name:        "generate",
		Usage:       "Generate recipes from cooking videos.",
		Description: generateCmdDescription,
		Action:      harnessAction(generateSuite),
		Flags: append(harnessFlags(), &cli.StringSliceFlag{
			Name:     "url",
			Aliases:  []string{"u"},
			Usage:    "a video url to generate a recipe for. May be repeated.",
			Category: "harness",
		}),
	}
)

func generateSuite(cfg config.Config, baseURL string) harness.Suite {
	return harness.Suite{
		Target:         cfg.Harness.Target,
		BaseURL:        baseURL,
		Fixtures:       cfg.Harness.Fixtures,
		TargetServings: cfg.Harness.TargetServings,
		SkipHealth:     true,
	}
}

func init() {
	rootApp.Commands = append(rootApp.Commands, generateCmd)
}
