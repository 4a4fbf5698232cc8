package cli

import (
	"bytes"
	"strings"
	"testing"
)

var completionAlgos = []string{"iterative", "memoized", "naive", "doubling"}

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell string
		wants []string
	}{
		{"bash", []string{"_fibseq_completions", "complete -F", "--algo", "iterative", "--last-digits"}},
		{"zsh", []string{"#compdef fibseq", "_arguments", "--parallel-threshold", "doubling"}},
		{"fish", []string{"complete -c fibseq", "-l algo", "-xa 'iterative memoized naive doubling all'"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, completionAlgos); err != nil {
				t.Fatalf("GenerateCompletion(%s) error = %v", tt.shell, err)
			}
			out := buf.String()
			for _, want := range tt.wants {
				if !strings.Contains(out, want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh", completionAlgos)
	if err == nil {
		t.Fatal("expected an error for unsupported shell")
	}
	if !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("error = %v, want unsupported shell message", err)
	}
}

func TestFlagRegistryCoversCoreFlags(t *testing.T) {
	t.Parallel()
	want := map[string]bool{
		"algo": false, "timeout": false, "parallel-threshold": false,
		"last-digits": false, "output": false, "tui": false, "completion": false,
	}
	for _, f := range flagRegistry {
		if _, ok := want[f.Long]; ok {
			want[f.Long] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("flag registry missing --%s", name)
		}
	}
}
