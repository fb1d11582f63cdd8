package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/client"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// terminalDisplay renders orchestrator output to a terminal. Results and
// history go to out; the spinner and errors go to errOut.
type terminalDisplay struct {
	out    io.Writer
	errOut io.Writer

	spinner *progressbar.ProgressBar
	stop    chan struct{}
	done    chan struct{}
}

func newTerminalDisplay(out, errOut io.Writer) *terminalDisplay {
	return &terminalDisplay{out: out, errOut: errOut}
}

func (d *terminalDisplay) Clear() {
	d.stopSpinner()
}

func (d *terminalDisplay) ShowLoading() {
	d.stopSpinner()

	d.spinner = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(d.errOut),
		progressbar.OptionSetDescription("Generating caption..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	d.stop = make(chan struct{})
	d.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(d.spinner, d.stop, d.done)
}

func (d *terminalDisplay) stopSpinner() {
	if d.stop == nil {
		return
	}
	close(d.stop)
	<-d.done
	_ = d.spinner.Finish()
	d.spinner, d.stop, d.done = nil, nil, nil
}

func (d *terminalDisplay) ShowError(message string) {
	d.stopSpinner()
	fmt.Fprintf(d.errOut, "Error: %s\n", message)
}

func (d *terminalDisplay) ShowResult(r *client.Result) {
	d.stopSpinner()

	if r.FileName != "" {
		fmt.Fprintf(d.out, "%s\n", r.FileName)
	}
	fmt.Fprintf(d.out, "  Caption:         %s\n", r.Caption)
	fmt.Fprintf(d.out, "  Confidence:      %d%%\n", client.ConfidencePercent(r.Confidence))
	fmt.Fprintf(d.out, "  Processing Time: %dms\n", r.ProcessingTime)
	if len(r.Variations) > 0 {
		fmt.Fprintln(d.out, "  Alternative captions:")
		for _, v := range r.Variations {
			fmt.Fprintf(d.out, "    - %s\n", v)
		}
	}
	fmt.Fprintln(d.out)
}

func (d *terminalDisplay) ShowHistory(entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(d.out, "Recent captions:")
	w := tabwriter.NewWriter(d.out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%s\n", e.Timestamp, e.Caption)
	}
	w.Flush()
	fmt.Fprintln(d.out)
}

// ShowEmpty is shown when no file was selected.
func (d *terminalDisplay) ShowEmpty() {
	fmt.Fprintln(d.out, "Upload an image to begin")
	fmt.Fprintf(d.out, "Supports JPG, PNG, WebP (max %dMB)\n", client.MaxAdvertisedSize>>20)
}

func (d *terminalDisplay) ShowExported(location string) {
	fmt.Fprintf(d.out, "Exported to %s\n", location)
}

func (d *terminalDisplay) ShowCopied() {
	fmt.Fprintln(d.out, "Caption copied to clipboard")
}
