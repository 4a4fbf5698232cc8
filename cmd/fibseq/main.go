package main

import (
	"context"
	"os"

	"github.com/fibseq/fibseq/internal/app"
	apperrors "github.com/fibseq/fibseq/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		if apperrors.IsConfigError(err) || apperrors.IsValidationError(err) {
			os.Exit(apperrors.ExitErrorConfig)
		}
		os.Exit(1)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
