package handler

import "go.uber.org/fx"

func Module(config Config) fx.Option {
	return fx.Module("handler",
		fx.Supply(config),
		fx.Provide(NewRecipeHandler),
		fx.Provide(NewRecipeRoute),
		fx.Provide(NewHealthRoute),
	)
}
