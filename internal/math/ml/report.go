package ml

import (
	"fmt"
	"io"
	"strings"

	coinmath "github.com/drakos74/slp/internal/math"
	"github.com/rs/zerolog/log"
)

const (
	testHeader = "====================== TESTING ========================="
	testFooter = "============ END OF TESTING ON %d SAMPLES ============="
)

// Reporter receives the training progress and the test results.
type Reporter interface {
	Progress(model string, done, total int)
	Test(report Report)
}

// LogReporter reports through the global logger.
// Progress goes to the debug level.
type LogReporter struct{}

func (l LogReporter) Progress(model string, done, total int) {
	log.Debug().
		Str("model", model).
		Int("sample", done).
		Int("total", total).
		Str("progress", coinmath.Percentage(done, total)).
		Msg("train")
}

func (l LogReporter) Test(report Report) {
	log.Info().
		Str("model", report.Model).
		Int("samples", report.Samples).
		Float64("accuracy", report.Accuracy).
		Float64("micro-precision", report.MicroPrecision).
		Float64("micro-recall", report.MicroRecall).
		Float64("macro-precision", report.MacroPrecision).
		Float64("macro-recall", report.MacroRecall).
		Floats64("precision", report.Precision).
		Floats64("recall", report.Recall).
		Msg("test")
}

// WriterReporter writes the reports as text.
type WriterReporter struct {
	w        io.Writer
	progress bool
}

// NewWriterReporter creates a new text reporter.
// If progress is set, every training step is written as a percentage line.
func NewWriterReporter(w io.Writer, progress bool) *WriterReporter {
	return &WriterReporter{
		w:        w,
		progress: progress,
	}
}

func (wr *WriterReporter) Progress(model string, done, total int) {
	if wr.progress {
		fmt.Fprintln(wr.w, coinmath.Percentage(done, total))
	}
}

func (wr *WriterReporter) Test(report Report) {
	fmt.Fprint(wr.w, report.String())
}

// VoidReporter ignores all reports.
type VoidReporter struct{}

func (v VoidReporter) Progress(model string, done, total int) {}

func (v VoidReporter) Test(report Report) {}

type reporters []Reporter

// Reporters fans out to all the given reporters.
func Reporters(rr ...Reporter) Reporter {
	return reporters(rr)
}

func (rr reporters) Progress(model string, done, total int) {
	for _, r := range rr {
		r.Progress(model, done, total)
	}
}

func (rr reporters) Test(report Report) {
	for _, r := range rr {
		r.Test(report)
	}
}

// String renders the report as a text block.
func (r Report) String() string {
	builder := strings.Builder{}
	builder.WriteString("\n")
	builder.WriteString(testHeader)
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Accuracy : %s\n", coinmath.Format(r.Accuracy, -1)))
	builder.WriteString(fmt.Sprintf("Micro average precision : %s\n", coinmath.Format(r.MicroPrecision, -1)))
	builder.WriteString(fmt.Sprintf("Micro average recall : %s\n", coinmath.Format(r.MicroRecall, -1)))
	builder.WriteString(fmt.Sprintf("Per class precisions : %s\n", coinmath.FormatAll(r.Precision, -1)))
	builder.WriteString(fmt.Sprintf("Per class recalls : %s\n", coinmath.FormatAll(r.Recall, -1)))
	builder.WriteString(fmt.Sprintf("Macro average precision : %s\n", coinmath.Format(r.MacroPrecision, -1)))
	builder.WriteString(fmt.Sprintf("Macro average recall : %s\n", coinmath.Format(r.MacroRecall, -1)))
	builder.WriteString(fmt.Sprintf(testFooter, r.Samples))
	builder.WriteString("\n\n")
	return builder.String()
}
