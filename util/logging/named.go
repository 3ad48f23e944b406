package logging

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NamedLogger returns a decorator that names a logger.
func NamedLogger(name string) func(log *zap.Logger) *zap.Logger {
	return func(log *zap.Logger) *zap.Logger {
		return log.Named(name)
	}
}

// DecorateLogger names the logger of an fx module and its children,
// e.g. "stub" for the stub backend.
func DecorateLogger(name string) fx.Option {
	return fx.Decorate(NamedLogger(name))
}
