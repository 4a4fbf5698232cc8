// Package apperrors defines the error taxonomy and exit codes shared across
// the application. Errors are plain typed structs so callers can inspect them
// with errors.As; the only recoverable handling happens at the CLI boundary,
// where errors are mapped to exit codes.
package apperrors
