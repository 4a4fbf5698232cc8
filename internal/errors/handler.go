package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color codes for error display. The interface
// keeps this package free of any dependency on the UI layer; the CLI passes
// its own implementation.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError inspects a calculation error, prints a user-facing
// diagnostic, and returns the matching process exit code.
//
// The mapping is:
//   - context deadline / TimeoutError -> ExitErrorTimeout
//   - context cancellation           -> ExitErrorCanceled
//   - ConfigError / ValidationError  -> ExitErrorConfig
//   - anything else                  -> ExitErrorGeneric
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var timeoutErr TimeoutError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sError: calculation timed out after %s.%s\n",
			colors.Red(), duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCalculation canceled by user.%s\n",
			colors.Yellow(), colors.Reset())
		return ExitErrorCanceled

	case IsValidationError(err):
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig

	default:
		var cfgErr ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
			return ExitErrorConfig
		}
		fmt.Fprintf(out, "%sError during calculation: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
}
