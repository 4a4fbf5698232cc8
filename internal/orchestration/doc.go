// Package orchestration coordinates the concurrent execution of one or more
// sequence calculators and the comparison of their results. It owns the
// concurrency model (errgroup fan-out, shared progress channel) and the
// consistency check across strategies, but delegates all presentation to
// interfaces implemented by the CLI and TUI layers.
package orchestration
