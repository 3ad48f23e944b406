package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cookmaa/probe/internal/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Params defines the dependencies of the harness.
type Params struct {
	// Config is the harness config.
	Config Config

	// Client is the http client to use. Defaults to a plain client,
	// timeouts are applied per request.
	Client *http.Client

	// PreviewCount is the number of ingredients kept as preview.
	PreviewCount int

	// Log is the logger to use.
	Log *zap.Logger
}

// Harness drives test cases against a backend, one at a time.
type Harness struct {
	config  Config
	client  *http.Client
	schema  *schema.Schema
	preview int
	log     *zap.Logger
}

// New creates a new harness.
func New(params Params) (*Harness, error) {
	s, err := schema.NewResponseSchema()
	if err != nil {
		return nil, fmt.Errorf("error loading response schema: %w", err)
	}

	client := params.Client
	if client == nil {
		client = &http.Client{}
	}

	preview := params.PreviewCount
	if preview <= 0 {
		preview = DefaultPreviewCount
	}

	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Harness{
		config:  params.Config,
		client:  client,
		schema:  s,
		preview: preview,
		log:     log.Named("harness"),
	}, nil
}

// Config returns the harness config.
func (h *Harness) Config() Config {
	return h.config
}

// RunHealthCheck issues GET {baseURL}/health with a short timeout.
func (h *Harness) RunHealthCheck(ctx context.Context, baseURL string) TestResult {
	return h.Execute(ctx, NewHealthCase(baseURL, h.config.healthTimeout()))
}

// RunGenerateRecipe issues POST {baseURL}/generate-recipe for a video
// url. A non-positive targetServings falls back to the configured value.
func (h *Harness) RunGenerateRecipe(
	ctx context.Context,
	baseURL string,
	youtubeURL string,
	targetServings int,
) TestResult {
	tc := NewGenerateCase(
		baseURL,
		youtubeURL,
		h.config.targetServings(targetServings),
		h.config.generateTimeout(),
	)

	return h.Execute(ctx, tc)
}

// RunSuite runs the health check and one generate-recipe case per
// fixture, strictly in sequence.
func (h *Harness) RunSuite(ctx context.Context, suite Suite) Run {
	run := Run{
		ID:        uuid.New(),
		Target:    suite.Target,
		StartedAt: time.Now(),
	}

	runHarness := *h
	runHarness.log = h.log.With(zap.Stringer("run_id", run.ID))

	runHarness.log.Info("starting run",
		zap.String("target", suite.Target),
		zap.String("base_url", suite.BaseURL),
		zap.Int("fixtures", len(suite.Fixtures)),
	)

	results := make([]TestResult, 0, len(suite.Fixtures)+1)

	if !suite.SkipHealth {
		results = append(results, runHarness.RunHealthCheck(ctx, suite.BaseURL))
	}

	if !suite.SkipGenerate {
		for _, fixture := range suite.Fixtures {
			results = append(results, runHarness.RunGenerateRecipe(ctx, suite.BaseURL, fixture, suite.TargetServings))
		}
	}

	run.Results = results
	run.Duration = time.Since(run.StartedAt)

	runHarness.log.Info("run finished",
		zap.Int("tests", len(results)),
		zap.Duration("duration", run.Duration),
	)

	return run
}

// Execute performs exactly one attempt of a test case. It never
// returns an error: every failure is captured in the result.
func (h *Harness) Execute(ctx context.Context, tc TestCase) (result TestResult) {
	log := h.log.With(
		zap.String("case", tc.Name),
		zap.String("method", tc.Method),
		zap.String("url", tc.URL()),
	)

	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Error("panic while executing test case", zap.Any("panic", p))
			result = TestResult{
				Case:    tc,
				Elapsed: time.Since(start),
				Outcome: OutcomeError,
				Kind:    KindUnexpected,
				Reason:  fmt.Sprintf("unexpected error: %v", p),
			}
		}

		logResult(log, result)
	}()

	return h.execute(ctx, log, tc)
}

func (h *Harness) execute(ctx context.Context, log *zap.Logger, tc TestCase) TestResult {
	if tc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tc.Timeout)
		defer cancel()
	}

	var body io.Reader
	if tc.Payload != nil {
		payload, err := json.Marshal(tc.Payload)
		if err != nil {
			return errorResult(tc, 0, KindUnexpected, fmt.Sprintf("error encoding payload: %v", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, tc.Method, tc.URL(), body)
	if err != nil {
		return errorResult(tc, 0, KindNetwork, fmt.Sprintf("invalid request: %v", err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Info("sending request", zap.Duration("timeout", tc.Timeout))

	start := time.Now()

	resp, err := h.client.Do(req)
	if err != nil {
		kind, reason := classify(err, tc.Timeout)
		return errorResult(tc, time.Since(start), kind, reason)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		kind, reason := classify(err, tc.Timeout)
		res := errorResult(tc, elapsed, kind, reason)
		res.StatusCode = resp.StatusCode
		return res
	}

	if resp.StatusCode != tc.ExpectedStatus {
		return TestResult{
			Case:       tc,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			Body:       raw,
			Outcome:    OutcomeFail,
			Kind:       KindHTTP,
			Reason:     statusReason(resp.StatusCode, tc.ExpectedStatus, raw),
		}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return TestResult{
			Case:       tc,
			StatusCode: resp.StatusCode,
			Elapsed:    elapsed,
			Body:       raw,
			Outcome:    OutcomeFail,
			Kind:       KindParse,
			Reason:     fmt.Sprintf("response is not valid json (%v): %s", err, truncate(raw, maxReasonBody)),
		}
	}

	return h.check(log, TestResult{
		Case:       tc,
		StatusCode: resp.StatusCode,
		Elapsed:    elapsed,
		Body:       raw,
		JSON:       decoded,
	})
}

// check applies the case-kind specific response check and settles
// the outcome.
func (h *Harness) check(log *zap.Logger, res TestResult) TestResult {
	switch res.Case.Kind {
	case CaseKindHealth:
		return h.checkHealth(res)
	case CaseKindGenerate:
		return h.checkRecipe(log, res)
	default:
		res.Outcome = OutcomePass
		return res
	}
}

func (h *Harness) checkHealth(res TestResult) TestResult {
	if reason, ok := h.validateSchema(schema.SchemaTypeHealth, res.JSON); !ok {
		res.Outcome = OutcomeFail
		res.Kind = KindShape
		res.Reason = reason
		return res
	}

	res.Outcome = OutcomePass
	return res
}

func (h *Harness) checkRecipe(log *zap.Logger, res TestResult) TestResult {
	if reason, ok := h.validateSchema(schema.SchemaTypeRecipe, res.JSON); !ok {
		res.Outcome = OutcomeFail
		res.Kind = KindShape
		res.Reason = reason
		return res
	}

	var shape RecipeShape
	if err := json.Unmarshal(res.Body, &shape); err != nil {
		res.Outcome = OutcomeFail
		res.Kind = KindParse
		res.Reason = fmt.Sprintf("error decoding recipe: %v", err)
		return res
	}

	report := shape.Report(h.preview)
	res.Recipe = &report

	check := shape.Check()
	if !check.Valid() {
		res.Outcome = OutcomeFail
		res.Kind = KindShape
		res.Reason = "recipe is missing required fields: " + strings.Join(check.MissingRequired, ", ")
		return res
	}

	for _, field := range check.MissingOptional {
		log.Info("optional recipe field missing",
			zap.String("field", field),
			zap.String("reported_as", Unknown),
		)
	}

	if report.IngredientCount == 0 {
		res.Warnings = append(res.Warnings, "no ingredients returned")
	}
	if report.StepCount == 0 {
		res.Warnings = append(res.Warnings, "no steps returned")
	}

	res.Outcome = OutcomePass
	return res
}

func (h *Harness) validateSchema(t schema.SchemaType, data any) (string, bool) {
	result, err := h.schema.Validate(t, data)
	if err != nil {
		return fmt.Sprintf("error validating %s response: %v", t, err), false
	}

	if !result.Valid() {
		return fmt.Sprintf("%s response does not match schema: %s", t, schema.Describe(result)), false
	}

	return "", true
}

func errorResult(tc TestCase, elapsed time.Duration, kind ErrorKind, reason string) TestResult {
	return TestResult{
		Case:    tc,
		Elapsed: elapsed,
		Outcome: OutcomeError,
		Kind:    kind,
		Reason:  reason,
	}
}

func logResult(log *zap.Logger, res TestResult) {
	fields := []zap.Field{
		zap.Stringer("outcome", res.Outcome),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", res.Elapsed),
	}

	if res.Kind != KindNone {
		fields = append(fields,
			zap.String("kind", string(res.Kind)),
			zap.String("reason", res.Reason),
		)
	}

	if res.Recipe != nil {
		fields = append(fields,
			zap.String("title", res.Recipe.Title),
			zap.Int("ingredients", res.Recipe.IngredientCount),
			zap.Int("steps", res.Recipe.StepCount),
		)
	}

	switch {
	case res.Outcome == OutcomePass:
		log.Info("test passed", fields...)
	case res.TimedOut():
		log.Warn("test timed out, video analysis may take a while", fields...)
	case res.Outcome == OutcomeFail:
		log.Warn("test failed", fields...)
	default:
		log.Error("test errored", fields...)
	}
}
