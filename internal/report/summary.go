package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cookmaa/probe/internal/harness"
	"github.com/google/uuid"
)

// Status is the display status of a single result.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusError   Status = "ERROR"
	StatusTimeout Status = "TIMEOUT"
)

// StatusOf maps a result to its display status. Timeouts are shown
// apart from other errors since long videos legitimately take long.
func StatusOf(res harness.TestResult) Status {
	switch {
	case res.Outcome == harness.OutcomePass:
		return StatusPass
	case res.TimedOut():
		return StatusTimeout
	case res.Outcome == harness.OutcomeFail:
		return StatusFail
	default:
		return StatusError
	}
}

// Line is the rendered summary of one result.
type Line struct {
	Status Status

	// Head is the one-line description of the test.
	Head string

	// Details are indented lines below the head.
	Details []string
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID    uuid.UUID
	Target   string
	Duration time.Duration

	Total    int
	Passed   int
	Failed   int
	Errored  int
	TimedOut int

	Lines []Line
}

// OK reports whether every test passed. Timeouts only count against
// the run if failOnTimeout is set.
func (s Summary) OK(failOnTimeout bool) bool {
	if s.Failed > 0 || s.Errored > 0 {
		return false
	}
	return !failOnTimeout || s.TimedOut == 0
}

// Summarize builds the summary of a run.
func Summarize(run harness.Run) Summary {
	summary := Summary{
		RunID:    run.ID,
		Target:   run.Target,
		Duration: run.Duration,
		Total:    len(run.Results),
		Lines:    make([]Line, 0, len(run.Results)),
	}

	for _, res := range run.Results {
		status := StatusOf(res)

		switch status {
		case StatusPass:
			summary.Passed++
		case StatusFail:
			summary.Failed++
		case StatusTimeout:
			summary.TimedOut++
		default:
			summary.Errored++
		}

		summary.Lines = append(summary.Lines, summarizeResult(status, res))
	}

	return summary
}

func summarizeResult(status Status, res harness.TestResult) Line {
	head := fmt.Sprintf("%s %s %s", res.Case.Name, res.Case.Method, res.Case.URL())
	if res.StatusCode != 0 {
		head += fmt.Sprintf(" status=%d", res.StatusCode)
	}
	head += fmt.Sprintf(" (%s)", formatDuration(res.Elapsed))

	line := Line{Status: status, Head: head}

	if r := res.Recipe; r != nil {
		line.Details = append(line.Details,
			fmt.Sprintf("recipe: %s", r.Title),
			fmt.Sprintf("cuisine: %s, servings: %d", r.Cuisine, r.Servings),
			fmt.Sprintf("ingredients: %d, steps: %d", r.IngredientCount, r.StepCount),
		)
		for i, ingredient := range r.Preview {
			line.Details = append(line.Details, fmt.Sprintf("  %d. %s", i+1, ingredient))
		}
	} else if res.Case.Kind == harness.CaseKindHealth && res.JSON != nil {
		line.Details = append(line.Details, fmt.Sprintf("response: %s", strings.TrimSpace(string(res.Body))))
	}

	for _, warning := range res.Warnings {
		line.Details = append(line.Details, "warning: "+warning)
	}

	if res.Reason != "" {
		line.Details = append(line.Details, fmt.Sprintf("%s: %s", res.Kind, res.Reason))
	}

	return line
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
