package report

import (
	"github.com/cookmaa/probe/internal/harness"
	"github.com/getsentry/sentry-go"
)

// CaptureFailures sends every unsuccessful result of a run to sentry.
// It is a no-op if sentry was not initialized.
func CaptureFailures(hub *sentry.Hub, run harness.Run) int {
	if hub == nil || hub.Client() == nil {
		return 0
	}

	captured := 0

	for _, res := range run.Results {
		if res.Passed() {
			continue
		}

		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTags(map[string]string{
				"run_id": run.ID.String(),
				"target": run.Target,
				"case":   res.Case.Name,
				"kind":   string(res.Kind),
			})
			scope.SetContext("request", sentry.Context{
				"method":      res.Case.Method,
				"url":         res.Case.URL(),
				"status_code": res.StatusCode,
				"elapsed_ms":  res.Elapsed.Milliseconds(),
			})

			if res.TimedOut() {
				scope.SetLevel(sentry.LevelWarning)
			} else {
				scope.SetLevel(sentry.LevelError)
			}

			hub.CaptureMessage(res.Case.Name + ": " + res.Reason)
		})

		captured++
	}

	return captured
}
