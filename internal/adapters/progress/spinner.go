package progress

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/blockverse-dao/bvdeploy/internal/usecase"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerSink prints progress lines to out and runs a spinner on errOut during long waits
type SpinnerSink struct {
	out       io.Writer
	errOut    io.Writer
	spinner   *spinner.Spinner
	infoColor *color.Color
	failColor *color.Color
}

// NewSpinnerSink creates a new spinner-based progress sink.
// The spinner only animates when errOut is a terminal.
func NewSpinnerSink(out, errOut io.Writer) *SpinnerSink {
	opts := []spinner.Option{spinner.WithWriter(errOut)}
	if f, ok := errOut.(*os.File); ok {
		opts = []spinner.Option{spinner.WithWriterFile(f)}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opts...)
	s.HideCursor = false

	return &SpinnerSink{
		out:       out,
		errOut:    errOut,
		spinner:   s,
		infoColor: color.New(color.FgCyan),
		failColor: color.New(color.FgRed),
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage == usecase.StageCompleted {
		r.Stop()
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints a progress line
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		r.infoColor.Fprintln(r.out, message)
	})
}

// Error prints an error line
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		r.failColor.Fprintln(r.errOut, message)
	})
}

// Stop halts the spinner if it is running
func (r *SpinnerSink) Stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// pause stops the spinner around a write so lines don't interleave with it
func (r *SpinnerSink) pause(write func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	write()

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
