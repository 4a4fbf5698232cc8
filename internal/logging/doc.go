// Package logging provides a unified logging interface for the sequence
// calculator. It abstracts the underlying logging implementation, allowing
// consistent structured logging across components while supporting multiple
// backends (zerolog by default, the standard library log as a fallback).
package logging
