package standalone

import (
	"go.uber.org/fx"

	"github.com/cookmaa/probe/handler"
	"github.com/cookmaa/probe/internal/server"
	"github.com/cookmaa/probe/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"stub",
		// rename logger for module
		logging.DecorateLogger("stub"),
		// provide handlers
		handler.Module(config.Stub),
		// provide server
		server.Module(config.Http),
	)
}
