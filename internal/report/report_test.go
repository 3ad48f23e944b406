package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestReporter_Print(t *testing.T) {
	var out bytes.Buffer

	r := New(Params{
		Config: Config{NoColor: true},
		Out:    &out,
		Log:    zap.NewNop(),
	})

	summary, err := r.Report(sampleRun())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")

	assert.Equal(t, "Run 6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b against local", lines[0])
	assert.Equal(t, "[PASS]    health GET http://localhost:8000/health status=200 (0.12s)", lines[1])
	assert.Contains(t, out.String(), "    recipe: Dal Tadka\n")
	assert.Contains(t, out.String(), "      1. 1 cup lentils\n")
	assert.Contains(t, out.String(), "[TIMEOUT] generate-recipe https://youtu.be/slow")
	assert.Contains(t, out.String(), "[FAIL]    generate-recipe https://youtu.be/broken")
	assert.Equal(t, "4 tests, 2 passed, 1 failed, 0 errored, 1 timed out in 1.50s", lines[len(lines)-1])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestReporter_PrintError(t *testing.T) {
	r := New(Params{
		Config: Config{NoColor: true},
		Out:    failingWriter{},
	})

	_, err := r.Report(sampleRun())
	assert.Error(t, err)
}

func TestReporter_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	r := New(Params{
		Config: Config{NoColor: true, Workbook: path},
		Out:    &bytes.Buffer{},
	})

	_, err := r.Report(sampleRun())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{resultsSheet}, f.GetSheetList())

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, workbookHeaders, rows[0])

	assert.Equal(t, "health", rows[1][1])
	assert.Equal(t, "200", rows[1][4])
	assert.Equal(t, "PASS", rows[1][5])

	assert.Equal(t, "2", rows[2][8])
	assert.Equal(t, "1", rows[2][9])

	assert.Equal(t, "TIMEOUT", rows[3][5])
	assert.Equal(t, "timeout", rows[3][6])

	assert.Equal(t, "FAIL", rows[4][5])
	assert.Equal(t, "unexpected status 500", rows[4][10])

	total, err := f.GetCellValue(resultsSheet, "B9")
	require.NoError(t, err)
	assert.Equal(t, "4", total)
}

func TestWorkbook_Fills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	run := sampleRun()

	require.NoError(t, WriteWorkbook(path, run, Summarize(run)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	fillOf := func(cell string) string {
		id, err := f.GetCellStyle(resultsSheet, cell)
		require.NoError(t, err)
		if id == 0 {
			return ""
		}
		style, err := f.GetStyle(id)
		require.NoError(t, err)
		return strings.Join(style.Fill.Color, ",")
	}

	assert.Empty(t, fillOf("A2"))
	assert.True(t, strings.HasSuffix(fillOf("A4"), warningBgColor))
	assert.True(t, strings.HasSuffix(fillOf("K5"), errorBgColor))
}

func TestWorkbook_InvalidPath(t *testing.T) {
	run := sampleRun()
	path := filepath.Join(t.TempDir(), "missing", "report.xlsx")

	assert.Error(t, WriteWorkbook(path, run, Summarize(run)))
}

type recordingTransport struct {
	events []*sentry.Event
}

func (t *recordingTransport) Configure(sentry.ClientOptions) {}

func (t *recordingTransport) SendEvent(event *sentry.Event) {
	t.events = append(t.events, event)
}

func (t *recordingTransport) Flush(time.Duration) bool { return true }

func TestCaptureFailures(t *testing.T) {
	transport := &recordingTransport{}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())

	captured := CaptureFailures(hub, sampleRun())
	assert.Equal(t, 2, captured)

	require.Len(t, transport.events, 2)

	assert.Equal(t, sentry.LevelWarning, transport.events[0].Level)
	assert.Equal(t, "timeout", transport.events[0].Tags["kind"])
	assert.Equal(t, "local", transport.events[0].Tags["target"])

	assert.Equal(t, sentry.LevelError, transport.events[1].Level)
	assert.Equal(t, "http", transport.events[1].Tags["kind"])
	assert.Equal(t, "generate-recipe https://youtu.be/broken: unexpected status 500", transport.events[1].Message)
}

func TestCaptureFailures_Disabled(t *testing.T) {
	assert.Equal(t, 0, CaptureFailures(nil, sampleRun()))
	assert.Equal(t, 0, CaptureFailures(sentry.NewHub(nil, sentry.NewScope()), sampleRun()))
}
