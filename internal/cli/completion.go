package cli

import (
	"fmt"
	"io"
	"strings"
)

// flagSpec describes a CLI flag for shell completion generation. All shells
// generate from the same registry, so adding a flag only requires appending
// to flagRegistry.
type flagSpec struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/free-form)
	ValueName string   // label for the value in zsh (e.g. "number", "duration")
	IsFile    bool     // flag takes a file path
	IsAlgo    bool     // values come from the algorithm list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []flagSpec{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Short: "n", Help: "Fibonacci index to compute", ValueName: "number"},
	{Long: "algo", Help: "Algorithm to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m", "1h"}, ValueName: "duration"},
	{Long: "parallel-threshold", Help: "Parallelism threshold in bits", Values: []string{"1024", "2048", "4096", "8192"}, ValueName: "bits"},
	{Long: "last-digits", Help: "Compute only the last K decimal digits", ValueName: "digits"},
	{Long: "verbose", Short: "v", Help: "Display the full result value"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "calculate", Short: "c", Help: "Display the calculated value"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Interactive terminal dashboard"},
	{Long: "metrics-addr", Help: "Prometheus metrics listen address", ValueName: "address"},
	{Long: "repl", Help: "Interactive calculator session"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for the given shell to out.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, algorithms)
	case "zsh":
		return generateZshCompletion(out, algorithms)
	case "fish":
		return generateFishCompletion(out, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// allFlagTokens returns every flag spelled with its dashes.
func allFlagTokens() []string {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}
	return opts
}

func generateBashCompletion(out io.Writer, algorithms []string) error {
	var cases strings.Builder
	for _, f := range flagRegistry {
		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		var patterns []string
		if f.Long != "" {
			patterns = append(patterns, "--"+f.Long)
		}
		if f.Short != "" {
			patterns = append(patterns, "-"+f.Short)
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(patterns, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for fibseq
# Add this to your ~/.bashrc or ~/.bash_completion

_fibseq_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibseq_completions fibseq
`, strings.Join(allFlagTokens(), " "), strings.Join(algorithms, " "), cases.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single flagSpec as a zsh _arguments entry.
func zshArgEntry(f flagSpec) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		valueSuffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

func generateZshCompletion(out io.Writer, algorithms []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef fibseq

# Zsh completion script for fibseq
# Add this to your ~/.zshrc or place in $fpath

_fibseq() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_fibseq "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single flagSpec as a fish complete command.
func fishCompleteLine(f flagSpec, algoList string) string {
	parts := []string{"complete -c fibseq"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", algoList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

func generateFishCompletion(out io.Writer, algorithms []string) error {
	algoList := strings.Join(algorithms, " ")

	lines := []string{
		"# Fish completion script for fibseq",
		"# Add this to ~/.config/fish/completions/fibseq.fish",
		"",
		"# Disable file completion by default",
		"complete -c fibseq -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, algoList))
	}
	lines = append(lines, "")

	_, err := fmt.Fprint(out, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}
