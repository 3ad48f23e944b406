package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cookmaa/probe/internal/harness"
	"go.uber.org/zap"
)

// Config configures reporting and the exit policy.
type Config struct {
	// PreviewCount is the number of ingredients previewed per recipe.
	PreviewCount int `conf:"preview_count"`

	// NoColor disables styled console output.
	NoColor bool `conf:"no_color"`

	// Workbook is the path of an optional .xlsx report.
	Workbook string `conf:"workbook"`

	// Strict makes the process exit non-zero unless all tests passed.
	Strict bool `conf:"strict"`

	// FailOnTimeout counts timeouts as failures in strict mode.
	FailOnTimeout bool `conf:"fail_on_timeout"`
}

var DefaultConfig = map[string]any{
	"preview_count":   harness.DefaultPreviewCount,
	"no_color":        false,
	"workbook":        "",
	"strict":          false,
	"fail_on_timeout": false,
}

type styles struct {
	status map[Status]lipgloss.Style
	head   lipgloss.Style
	detail lipgloss.Style
	title  lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer, noColor bool) styles {
	if noColor {
		plain := renderer.NewStyle()
		return styles{
			status: map[Status]lipgloss.Style{},
			head:   plain,
			detail: plain,
			title:  plain,
		}
	}

	return styles{
		status: map[Status]lipgloss.Style{
			StatusPass:    renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			StatusFail:    renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			StatusError:   renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			StatusTimeout: renderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		},
		head:   renderer.NewStyle(),
		detail: renderer.NewStyle().Foreground(lipgloss.Color("8")),
		title:  renderer.NewStyle().Bold(true),
	}
}

func (s styles) statusStyle(status Status) lipgloss.Style {
	if style, ok := s.status[status]; ok {
		return style
	}
	return s.head
}

type Params struct {
	Config Config

	// Out is where the console report goes. Defaults to stdout.
	Out io.Writer

	Log *zap.Logger
}

// Reporter renders run summaries.
type Reporter struct {
	config Config
	out    io.Writer
	styles styles
	log    *zap.Logger
}

func New(params Params) *Reporter {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Reporter{
		config: params.Config,
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out), params.Config.NoColor),
		log:    log.Named("report"),
	}
}

// Report prints the summary of a run and writes the workbook, if one
// is configured. The summary is returned even if writing fails.
func (r *Reporter) Report(run harness.Run) (Summary, error) {
	summary := Summarize(run)

	if err := r.Print(summary); err != nil {
		return summary, fmt.Errorf("error printing report: %w", err)
	}

	if r.config.Workbook != "" {
		if err := WriteWorkbook(r.config.Workbook, run, summary); err != nil {
			r.log.Error("failed to write workbook", zap.Error(err), zap.String("path", r.config.Workbook))
			return summary, err
		}
		r.log.Info("wrote workbook", zap.String("path", r.config.Workbook))
	}

	return summary, nil
}

// Print writes the console report of a summary.
func (r *Reporter) Print(summary Summary) error {
	var b strings.Builder

	b.WriteString(r.styles.title.Render(fmt.Sprintf("Run %s against %s", summary.RunID, summary.Target)))
	b.WriteString("\n")

	width := 0
	for _, line := range summary.Lines {
		if n := len(line.Status); n > width {
			width = n
		}
	}

	for _, line := range summary.Lines {
		tag := fmt.Sprintf("[%s]", line.Status)
		tag += strings.Repeat(" ", width-len(line.Status))

		b.WriteString(r.styles.statusStyle(line.Status).Render(tag))
		b.WriteString(" ")
		b.WriteString(r.styles.head.Render(line.Head))
		b.WriteString("\n")

		for _, detail := range line.Details {
			b.WriteString("    ")
			b.WriteString(r.styles.detail.Render(detail))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(r.styles.title.Render(fmt.Sprintf(
		"%d tests, %d passed, %d failed, %d errored, %d timed out in %s",
		summary.Total,
		summary.Passed,
		summary.Failed,
		summary.Errored,
		summary.TimedOut,
		formatDuration(summary.Duration),
	)))
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}
