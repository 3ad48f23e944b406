package harness

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CaseKind selects the response check applied to a test case.
type CaseKind string

const (
	CaseKindHealth   CaseKind = "health"
	CaseKindGenerate CaseKind = "generate-recipe"
)

// TestCase is a single configured request against the backend.
type TestCase struct {
	// Name identifies the case in logs and reports.
	Name string

	// Kind selects the response check.
	Kind CaseKind

	// BaseURL is the backend base URL, without trailing path.
	BaseURL string

	// Path is the endpoint path, e.g. /health.
	Path string

	// Method is the HTTP method.
	Method string

	// Payload is encoded as the JSON request body when not nil.
	Payload map[string]any

	// Timeout bounds the whole round trip, including reading the body.
	Timeout time.Duration

	// ExpectedStatus is the status code considered a success.
	ExpectedStatus int
}

// URL returns the full request url of the case.
func (c TestCase) URL() string {
	return joinURL(c.BaseURL, c.Path)
}

// Outcome is the state of a test result.
type Outcome int

const (
	// OutcomePending is the state while the request is in flight.
	OutcomePending Outcome = iota
	OutcomePass
	OutcomeFail
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome is final.
func (o Outcome) Terminal() bool {
	return o == OutcomePass || o == OutcomeFail || o == OutcomeError
}

// ErrorKind classifies why a test did not pass.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindNetwork    ErrorKind = "network"
	KindTimeout    ErrorKind = "timeout"
	KindHTTP       ErrorKind = "http"
	KindParse      ErrorKind = "parse"
	KindShape      ErrorKind = "shape"
	KindUnexpected ErrorKind = "unexpected"
)

// TestResult is the outcome and diagnostic data of one executed test case.
type TestResult struct {
	Case       TestCase
	StatusCode int
	Elapsed    time.Duration

	// Body is the raw response body.
	Body []byte

	// JSON is the decoded body, if it was valid json.
	JSON any

	Outcome Outcome
	Kind    ErrorKind
	Reason  string

	// Recipe is set for generate-recipe cases with a well-formed body.
	Recipe *RecipeReport

	// Warnings are non-fatal findings, e.g. an empty step list.
	Warnings []string
}

// Passed reports whether the result is a pass.
func (r TestResult) Passed() bool {
	return r.Outcome == OutcomePass
}

// TimedOut reports whether the request exceeded its timeout.
func (r TestResult) TimedOut() bool {
	return r.Kind == KindTimeout
}

// Run is one sequential execution of a suite.
type Run struct {
	ID        uuid.UUID
	Target    string
	StartedAt time.Time
	Duration  time.Duration
	Results   []TestResult
}

// Suite describes the cases of a run.
type Suite struct {
	// Target is the name of the target, used for reporting only.
	Target string

	// BaseURL is the backend base URL.
	BaseURL string

	// Fixtures are the video urls to generate recipes for.
	Fixtures []string

	// TargetServings is sent with every generate-recipe request.
	TargetServings int

	// SkipHealth skips the health check.
	SkipHealth bool

	// SkipGenerate skips the generate-recipe cases.
	SkipGenerate bool
}

// NewHealthCase builds the health check case for a backend.
func NewHealthCase(baseURL string, timeout time.Duration) TestCase {
	return TestCase{
		Name:           "health",
		Kind:           CaseKindHealth,
		BaseURL:        baseURL,
		Path:           "/health",
		Method:         http.MethodGet,
		Timeout:        timeout,
		ExpectedStatus: http.StatusOK,
	}
}

// NewGenerateCase builds the generate-recipe case for a video url.
func NewGenerateCase(baseURL, youtubeURL string, targetServings int, timeout time.Duration) TestCase {
	return TestCase{
		Name:    "generate-recipe " + youtubeURL,
		Kind:    CaseKindGenerate,
		BaseURL: baseURL,
		Path:    "/generate-recipe",
		Method:  http.MethodPost,
		Payload: map[string]any{
			"youtube_url":     youtubeURL,
			"target_servings": targetServings,
		},
		Timeout:        timeout,
		ExpectedStatus: http.StatusOK,
	}
}
