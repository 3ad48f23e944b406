package standalone

import (
	"github.com/cookmaa/probe/handler"
	"github.com/cookmaa/probe/internal/server"
)

type Config struct {
	// Http represents the configuration for the HTTP server.
	Http server.HttpConfig

	// Stub configures the canned backend behaviour.
	Stub handler.Config
}
