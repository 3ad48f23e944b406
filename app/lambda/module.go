package lambda

import (
	"go.uber.org/fx"

	"github.com/cookmaa/probe/handler"
	"github.com/cookmaa/probe/util/logging"
)

func Module(config Config, stub handler.Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide handlers
		handler.Module(stub),
		// provide server
		fx.Provide(NewLifecycleHandler),
		// invoke server
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
