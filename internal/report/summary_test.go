package report

import (
	"net/http"
	"testing"
	"time"

	"github.com/cookmaa/probe/internal/harness"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const baseURL = "http://localhost:8000"

func sampleRun() harness.Run {
	health := harness.NewHealthCase(baseURL, 10*time.Second)
	generate := harness.NewGenerateCase(baseURL, "https://youtu.be/abc", 4, time.Minute)
	slow := harness.NewGenerateCase(baseURL, "https://youtu.be/slow", 4, time.Minute)
	broken := harness.NewGenerateCase(baseURL, "https://youtu.be/broken", 4, time.Minute)

	return harness.Run{
		ID:       uuid.MustParse("6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b"),
		Target:   "local",
		Duration: 1500 * time.Millisecond,
		Results: []harness.TestResult{
			{
				Case:       health,
				StatusCode: http.StatusOK,
				Elapsed:    120 * time.Millisecond,
				Body:       []byte("{\"status\":\"ok\"}\n"),
				JSON:       map[string]any{"status": "ok"},
				Outcome:    harness.OutcomePass,
			},
			{
				Case:       generate,
				StatusCode: http.StatusOK,
				Elapsed:    time.Second,
				Outcome:    harness.OutcomePass,
				Recipe: &harness.RecipeReport{
					Title:           "Dal Tadka",
					Servings:        4,
					Cuisine:         harness.Unknown,
					IngredientCount: 2,
					StepCount:       1,
					Preview: []harness.Ingredient{
						{Amount: "1", Unit: "cup", Name: "lentils"},
						{Name: "salt"},
					},
					MissingOptional: []string{"cuisine"},
				},
				Warnings: []string{"recipe has no cuisine"},
			},
			{
				Case:    slow,
				Elapsed: time.Minute,
				Outcome: harness.OutcomeError,
				Kind:    harness.KindTimeout,
				Reason:  "request timed out after 1m0s",
			},
			{
				Case:       broken,
				StatusCode: http.StatusInternalServerError,
				Elapsed:    250 * time.Millisecond,
				Outcome:    harness.OutcomeFail,
				Kind:       harness.KindHTTP,
				Reason:     "unexpected status 500",
			},
		},
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		res  harness.TestResult
		want Status
	}{
		{"pass", harness.TestResult{Outcome: harness.OutcomePass}, StatusPass},
		{"fail", harness.TestResult{Outcome: harness.OutcomeFail, Kind: harness.KindShape}, StatusFail},
		{"error", harness.TestResult{Outcome: harness.OutcomeError, Kind: harness.KindNetwork}, StatusError},
		{"timeout", harness.TestResult{Outcome: harness.OutcomeError, Kind: harness.KindTimeout}, StatusTimeout},
		{"pending", harness.TestResult{}, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.res))
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleRun())

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Errored)
	assert.Equal(t, 1, summary.TimedOut)
	assert.Equal(t, "local", summary.Target)

	want := []Line{
		{
			Status:  StatusPass,
			Head:    "health GET http://localhost:8000/health status=200 (0.12s)",
			Details: []string{`response: {"status":"ok"}`},
		},
		{
			Status: StatusPass,
			Head:   "generate-recipe https://youtu.be/abc POST http://localhost:8000/generate-recipe status=200 (1.00s)",
			Details: []string{
				"recipe: Dal Tadka",
				"cuisine: Unknown, servings: 4",
				"ingredients: 2, steps: 1",
				"  1. 1 cup lentils",
				"  2. salt",
				"warning: recipe has no cuisine",
			},
		},
		{
			Status:  StatusTimeout,
			Head:    "generate-recipe https://youtu.be/slow POST http://localhost:8000/generate-recipe (60.00s)",
			Details: []string{"timeout: request timed out after 1m0s"},
		},
		{
			Status:  StatusFail,
			Head:    "generate-recipe https://youtu.be/broken POST http://localhost:8000/generate-recipe status=500 (0.25s)",
			Details: []string{"http: unexpected status 500"},
		},
	}

	if diff := cmp.Diff(want, summary.Lines); diff != "" {
		t.Errorf("Summarize() lines mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_OK(t *testing.T) {
	tests := []struct {
		name          string
		summary       Summary
		failOnTimeout bool
		want          bool
	}{
		{"all passed", Summary{Total: 2, Passed: 2}, false, true},
		{"failure", Summary{Total: 2, Passed: 1, Failed: 1}, false, false},
		{"error", Summary{Total: 2, Passed: 1, Errored: 1}, false, false},
		{"timeout tolerated", Summary{Total: 2, Passed: 1, TimedOut: 1}, false, true},
		{"timeout counted", Summary{Total: 2, Passed: 1, TimedOut: 1}, true, false},
		{"empty", Summary{}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.OK(tt.failOnTimeout))
		})
	}
}
