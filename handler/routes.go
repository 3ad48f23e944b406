package handler

import (
	"net/http"

	"github.com/cookmaa/probe/internal/server"
)

func NewRecipeRoute(handler *RecipeHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/generate-recipe", handler)
}

func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler("/health", http.HandlerFunc(HealthHandler))
}
