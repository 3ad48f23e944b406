package conf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cookmaa/probe/util/cliflags"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// DefaultConfig is a flat map of dotted config keys to default values.
type DefaultConfig map[string]any

type ParseOptions struct {
	// Cli is the cli.Context from urfave/cli
	Cli *cli.Context

	// CliMap is a map of cli flag names to config keys
	CliMap map[string]string

	// Defaults is a map of default values
	Defaults DefaultConfig

	// EnvPrefix is the prefix for env vars
	EnvPrefix string

	// FileName is the name of the configuration file to load
	FileName string

	// Log is the logger to use
	Log *zap.Logger
}

func Parse[C any](opt ParseOptions) (C, error) {
	var config C

	var log *zap.Logger
	if opt.Log != nil {
		log = opt.Log
	} else {
		log = zap.NewNop()
	}

	k := koanf.New(".")

	if opt.Defaults != nil {
		if err := k.Load(confmap.Provider(opt.Defaults, "."), nil); err != nil {
			log.Error("error loading defaults", zap.Error(err))
			return config, err
		}
	}

	transformPrefixedEnv := func(s string) string {
		return transformEnv(s, opt.EnvPrefix)
	}

	if opt.FileName != "" {
		parser, err := parserForFile(opt.FileName, opt.EnvPrefix, transformPrefixedEnv)
		if err != nil {
			log.Error("unsupported config file", zap.Error(err), zap.String("file", opt.FileName))
			return config, err
		}

		if err := k.Load(file.Provider(opt.FileName), parser); err != nil {
			log.Error("error parsing file",
				zap.Error(err),
				zap.String("file", opt.FileName),
			)
			return config, fmt.Errorf("error parsing config file %s: %w", opt.FileName, err)
		}
	}

	if err := k.Load(env.Provider(opt.EnvPrefix, ".", transformPrefixedEnv), nil); err != nil {
		log.Error("error parsing env vars", zap.Error(err))
		return config, err
	}

	if opt.Cli != nil {
		transformFlag := func(s string) string {
			if opt.CliMap != nil {
				if name, ok := opt.CliMap[s]; ok {
					return name
				}
			}

			// replace - with _
			return strings.ReplaceAll(strings.ToLower(s), "-", "_")
		}

		if err := k.Load(cliflags.Provider(opt.Cli, ".", transformFlag), nil); err != nil {
			log.Error("error parsing cli flags", zap.Error(err))
			return config, err
		}
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		log.Error("error unmarshalling config", zap.Error(err))
		return config, err
	}

	return config, nil
}

// parserForFile picks a koanf parser from the file extension.
func parserForFile(name, envPrefix string, cb func(string) string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return YAML(), nil
	case ".env":
		return dotenv.ParserEnv(envPrefix, ".", cb), nil
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
}

func transformEnv(s, prefix string) string {
	normalized := strings.ToLower(s)
	// pop prefix if it is set
	if prefix != "" {
		normalized = strings.TrimPrefix(normalized, strings.ToLower(prefix))
	}
	// allow specifying nested env vars w/ __
	return strings.ReplaceAll(normalized, "__", ".")
}
