package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cookmaa/probe/handler"
	"github.com/cookmaa/probe/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newStubBackend(t *testing.T, config handler.Config) string {
	recipe := handler.NewRecipeRoute(handler.NewRecipeHandler(handler.RecipeHandlerParams{
		Config: config,
		Log:    zap.NewNop(),
	}))
	health := handler.NewHealthRoute()

	srv := httptest.NewServer(server.NewServeMux([]*server.HttpHandler{recipe.Handler, health.Handler}))
	t.Cleanup(srv.Close)

	return srv.URL
}

func runCLI(t *testing.T, args ...string) (int, string) {
	var out bytes.Buffer
	rootApp.Writer = &out
	t.Cleanup(func() { rootApp.Writer = os.Stdout })

	code := run(context.Background(), append([]string{appName, "--log-level", "error"}, args...))
	return code, out.String()
}

func TestRun_PassesAgainstStub(t *testing.T) {
	base := newStubBackend(t, handler.Config{})

	code, out := runCLI(t, "run", "--target", base, "--no-color", "--strict", "--servings", "2")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "[PASS] health GET "+base+"/health")
	assert.Contains(t, out, "recipe: Dal Tadka")
	assert.Contains(t, out, "cuisine: Indian, servings: 2")
	assert.Contains(t, out, "2 tests, 2 passed, 0 failed, 0 errored, 0 timed out")
}

func TestRun_StrictExitCode(t *testing.T) {
	base := newStubBackend(t, handler.Config{FailStatus: http.StatusBadGateway})

	code, out := runCLI(t, "generate", "-t", base, "--no-color", "--strict", "--url", "https://youtu.be/abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "[FAIL] generate-recipe https://youtu.be/abc")
	assert.Contains(t, out, "unexpected status 502")

	code, _ = runCLI(t, "generate", "-t", base, "--no-color", "--url", "https://youtu.be/abc")
	assert.Equal(t, 0, code)
}

func TestHealth_UnknownTarget(t *testing.T) {
	code, _ := runCLI(t, "health", "--target", "staging")
	assert.Equal(t, 1, code)
}

func TestRun_Workbook(t *testing.T) {
	base := newStubBackend(t, handler.Config{})
	path := filepath.Join(t.TempDir(), "results.xlsx")

	code, _ := runCLI(t, "health", "--target", base, "--no-color", "--workbook", path)
	require.Equal(t, 0, code)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	outcome, err := f.GetCellValue("Results", "F2")
	require.NoError(t, err)
	assert.Equal(t, "PASS", outcome)
}

func TestRun_ConfigFile(t *testing.T) {
	base := newStubBackend(t, handler.Config{})

	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("harness:\n  targets:\n    stub: "+base+"\n  target: stub\n"), 0o600))

	code, out := runCLI(t, "--config", path, "health", "--no-color", "--strict")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "against stub")
}
