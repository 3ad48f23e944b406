package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxRequestBody caps the size of a generate-recipe request body.
const maxRequestBody = 64 << 10

// GenerateRequest is the body of a generate-recipe request.
type GenerateRequest struct {
	YoutubeURL     string `json:"youtube_url"`
	TargetServings int    `json:"target_servings"`
}

type ingredient struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Name   string `json:"name"`
}

type recipe struct {
	Title       string       `json:"title"`
	Servings    int          `json:"servings"`
	Cuisine     string       `json:"cuisine,omitempty"`
	Ingredients []ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
}

// cannedRecipe is the recipe returned for every video.
func cannedRecipe(servings int) recipe {
	return recipe{
		Title:    "Dal Tadka",
		Servings: servings,
		Cuisine:  "Indian",
		Ingredients: []ingredient{
			{Amount: "1", Unit: "cup", Name: "yellow lentils"},
			{Amount: "3", Unit: "cups", Name: "water"},
			{Amount: "1", Unit: "tsp", Name: "turmeric"},
			{Amount: "2", Unit: "tbsp", Name: "ghee"},
			{Amount: "1", Unit: "tsp", Name: "cumin seeds"},
		},
		Steps: []string{
			"Rinse and boil the lentils with turmeric until soft",
			"Heat ghee and crackle the cumin seeds",
			"Pour the tadka over the lentils and simmer",
		},
	}
}

type RecipeHandlerParams struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

func NewRecipeHandler(params RecipeHandlerParams) *RecipeHandler {
	return &RecipeHandler{
		config: params.Config,
		log:    params.Log,
	}
}

// RecipeHandler serves canned recipes for generate-recipe requests.
type RecipeHandler struct {
	config Config
	log    *zap.Logger
}

func (h *RecipeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	if r.Method != http.MethodPost {
		log.Debug("invalid http method")
		http.Error(w, "invalid http method", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Debug("request body too large", zap.Int64("limit", tooLarge.Limit))
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		log.Debug("failed to decode body", zap.Error(err))
		http.Error(w, "failed to decode body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.YoutubeURL) == "" {
		log.Debug("missing youtube_url")
		http.Error(w, "youtube_url is required", http.StatusBadRequest)
		return
	}

	if req.TargetServings <= 0 {
		log.Debug("invalid target_servings", zap.Int("target_servings", req.TargetServings))
		http.Error(w, "target_servings must be positive", http.StatusBadRequest)
		return
	}

	log = log.With(zap.String("youtube_url", req.YoutubeURL))

	if h.config.Delay > 0 {
		timer := time.NewTimer(h.config.Delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-r.Context().Done():
			log.Debug("client went away", zap.Error(r.Context().Err()))
			return
		}
	}

	if h.config.FailStatus != 0 {
		log.Debug("failing request", zap.Int("status", h.config.FailStatus))
		http.Error(w, http.StatusText(h.config.FailStatus), h.config.FailStatus)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(cannedRecipe(req.TargetServings)); err != nil {
		log.Debug("failed to write response", zap.Error(err))
		return
	}

	log.Info("served recipe", zap.Int("target_servings", req.TargetServings))
}
