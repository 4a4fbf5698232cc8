// Package cli implements the command-line presentation layer: progress
// display, result formatting and file output.
//
// Naming conventions:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.
package cli

import (
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/fibseq/fibseq/internal/format"
	"github.com/fibseq/fibseq/internal/progress"
	"github.com/fibseq/fibseq/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges is the number of digits shown at the beginning and end
	// of a truncated number.
	DisplayEdges = 25
	// ProgressRefreshRate is the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the character width of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without driving a real terminal animation.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner is a hook replaced in tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to keep updates in sync.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes progress updates and renders a spinner with an
// aggregated progress bar and ETA. It runs until progressChan is closed and
// signals completion through wg.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	tracker := format.NewProgressWithETA(numCalculators)
	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	render := func() {
		avg := tracker.CalculateAverage()
		eta := tracker.GetETA()
		sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				render()
				return
			}
			tracker.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			render()
		}
	}
}

// DisplayResult writes the final calculation result. Verbose mode prints the
// full value regardless of size; otherwise values beyond TruncationLimit
// digits are truncated to their edges. The value itself only appears when
// showValue or verbose is set.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	if result == nil {
		fmt.Fprintf(out, "%sNo result available.%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Calculation time: %s%s%s\n",
		ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())

	resultStr := result.String()
	numDigits := len(resultStr)
	if details {
		fmt.Fprintf(out, "Size: %s%s%s digits (%s%s%s bits)\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", numDigits)), ui.ColorReset(),
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", result.BitLen())), ui.ColorReset())
	}

	if !showValue && !verbose {
		fmt.Fprintf(out, "F(%d) calculated. Use -c to display the value.\n", n)
		return
	}

	if !verbose && numDigits > TruncationLimit {
		fmt.Fprintf(out, "F(%d) = %s%s...%s%s (%d digits truncated)\n",
			n, ui.ColorGreen(), resultStr[:DisplayEdges], resultStr[numDigits-DisplayEdges:],
			ui.ColorReset(), numDigits-2*DisplayEdges)
		return
	}

	fmt.Fprintf(out, "F(%d) = %s%s%s\n", n, ui.ColorGreen(), resultStr, ui.ColorReset())
}
