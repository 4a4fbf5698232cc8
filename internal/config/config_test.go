package config

import (
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/fibseq/fibseq/internal/errors"
)

var testAlgos = []string{"iterative", "memoized", "naive", "doubling"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("fibseq", args, io.Discard, testAlgos)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != DefaultN {
		t.Errorf("N = %d, want %d", cfg.N, DefaultN)
	}
	if cfg.Algo != DefaultAlgo {
		t.Errorf("Algo = %q, want %q", cfg.Algo, DefaultAlgo)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Verbose || cfg.Quiet || cfg.ShowValue || cfg.TUI {
		t.Errorf("boolean flags should default to false, got %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t,
		"-n", "500",
		"-algo", "doubling",
		"-timeout", "30s",
		"-parallel-threshold", "1024",
		"-last-digits", "8",
		"-v", "-c",
		"-o", "result.txt",
		"-metrics-addr", ":9090",
	)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != 500 {
		t.Errorf("N = %d, want 500", cfg.N)
	}
	if cfg.Algo != "doubling" {
		t.Errorf("Algo = %q, want doubling", cfg.Algo)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.ParallelThreshold != 1024 {
		t.Errorf("ParallelThreshold = %d, want 1024", cfg.ParallelThreshold)
	}
	if cfg.LastDigits != 8 {
		t.Errorf("LastDigits = %d, want 8", cfg.LastDigits)
	}
	if !cfg.Verbose || !cfg.ShowValue {
		t.Errorf("expected Verbose and ShowValue set, got %+v", cfg)
	}
	if cfg.OutputFile != "result.txt" {
		t.Errorf("OutputFile = %q, want result.txt", cfg.OutputFile)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown algo", []string{"-algo", "bogus"}, "unknown algorithm"},
		{"zero timeout", []string{"-timeout", "0s"}, "timeout must be positive"},
		{"negative last digits", []string{"-last-digits", "-3"}, "last-digits must be non-negative"},
		{"quiet and verbose", []string{"-q", "-v"}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !apperrors.IsConfigError(err) {
				t.Fatalf("expected ConfigError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseConfig_AlgoCaseInsensitive(t *testing.T) {
	cfg, err := parse(t, "-algo", "Doubling")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Algo != "Doubling" {
		t.Errorf("Algo = %q, want Doubling preserved", cfg.Algo)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "777")
	t.Setenv(EnvPrefix+"ALGO", "iterative")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")
	t.Setenv(EnvPrefix+"VERBOSE", "yes")
	t.Setenv(EnvPrefix+"LAST_DIGITS", "4")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != 777 {
		t.Errorf("N = %d, want 777 from env", cfg.N)
	}
	if cfg.Algo != "iterative" {
		t.Errorf("Algo = %q, want iterative from env", cfg.Algo)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s, want 90s from env", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true from env")
	}
	if cfg.LastDigits != 4 {
		t.Errorf("LastDigits = %d, want 4 from env", cfg.LastDigits)
	}
}

func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "777")
	t.Setenv(EnvPrefix+"ALGO", "iterative")

	cfg, err := parse(t, "-n", "42", "-algo", "memoized")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != 42 {
		t.Errorf("N = %d, want CLI value 42", cfg.N)
	}
	if cfg.Algo != "memoized" {
		t.Errorf("Algo = %q, want CLI value memoized", cfg.Algo)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "not-a-number")
	t.Setenv(EnvPrefix+"TIMEOUT", "banana")
	t.Setenv(EnvPrefix+"VERBOSE", "maybe")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != DefaultN {
		t.Errorf("N = %d, want default %d when env is invalid", cfg.N, DefaultN)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want default %s when env is invalid", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Verbose {
		t.Error("Verbose should keep default false for unrecognized env value")
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
