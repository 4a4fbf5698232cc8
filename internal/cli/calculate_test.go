package cli

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/fibseq/fibseq/internal/config"
	"github.com/fibseq/fibseq/internal/fibonacci"
)

func TestPrintExecutionConfig(t *testing.T) {
	disableColors(t)

	var buf bytes.Buffer
	cfg := config.AppConfig{N: 1000, Timeout: 5 * time.Minute}
	PrintExecutionConfig(cfg, &buf)

	out := buf.String()
	if !strings.Contains(out, "F(1000)") {
		t.Errorf("expected target index, got %q", out)
	}
	if !strings.Contains(out, "5m0s") {
		t.Errorf("expected timeout, got %q", out)
	}

	buf.Reset()
	cfg.ParallelThreshold = -1
	PrintExecutionConfig(cfg, &buf)
	if !strings.Contains(buf.String(), "disabled") {
		t.Errorf("negative threshold should read as disabled, got %q", buf.String())
	}
}

func TestPrintExecutionMode(t *testing.T) {
	disableColors(t)
	factory := fibonacci.NewDefaultFactory()

	var buf bytes.Buffer
	PrintExecutionMode(factory.GetAll(), &buf)
	if !strings.Contains(buf.String(), "Parallel comparison") {
		t.Errorf("expected comparison mode, got %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode([]fibonacci.Calculator{mustCalc(t, "doubling")}, &buf)
	if !strings.Contains(buf.String(), "Single calculation") {
		t.Errorf("expected single mode, got %q", buf.String())
	}
}

func TestPrintLastDigitsResult(t *testing.T) {
	disableColors(t)

	t.Run("zero padded", func(t *testing.T) {
		var buf bytes.Buffer
		PrintLastDigitsResult(big.NewInt(55), 10, 6, false, &buf)
		if !strings.Contains(buf.String(), "000055") {
			t.Errorf("expected zero-padded digits, got %q", buf.String())
		}
	})

	t.Run("quiet prints only the digits", func(t *testing.T) {
		var buf bytes.Buffer
		PrintLastDigitsResult(big.NewInt(55), 10, 6, true, &buf)
		if got := strings.TrimSpace(buf.String()); got != "000055" {
			t.Errorf("quiet output = %q, want 000055", got)
		}
	})
}
