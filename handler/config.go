package handler

import "time"

// Config configures the stub backend.
type Config struct {
	// Delay is how long the stub takes to "analyse" a video.
	Delay time.Duration `conf:"delay"`

	// FailStatus, if set, is returned by generate-recipe instead of
	// a recipe.
	FailStatus int `conf:"fail_status"`
}
