package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry, so adding a flag only
// requires appending to it.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Alias     string   // optional alternative name
	Help      string   // description text
	Values    []string // suggested values (nil = no suggestions)
	ValueName string   // label of the value ("" = boolean flag)
	IsFile    bool     // the flag takes a file path
	IsSource  bool     // values are the available counter sources
}

var flagRegistry = []FlagCompletion{
	{Name: "h", Alias: "help", Help: "Show help message"},
	{Name: "version", Alias: "V", Help: "Show version information"},
	{Name: "n", Alias: "count", Help: "Number of samples", ValueName: "number"},
	{Name: "interval", Help: "Sampling interval", Values: []string{"100ms", "500ms", "1s", "5s"}, ValueName: "duration"},
	{Name: "pause", Help: "Pause between samples", Values: []string{"0s", "100ms", "1s"}, ValueName: "duration"},
	{Name: "min-interval", Help: "Minimum accepted interval", ValueName: "duration"},
	{Name: "timeout", Help: "Maximum run time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Name: "source", Help: "Counter source", IsSource: true, ValueName: "source"},
	{Name: "proc-root", Help: "procfs mount point", IsFile: true, ValueName: "dir"},
	{Name: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Name: "telemetry-out", Help: "Self-telemetry output file", IsFile: true, ValueName: "file"},
	{Name: "json", Help: "One JSON object per sample"},
	{Name: "q", Alias: "quiet", Help: "Print only sample lines"},
	{Name: "v", Alias: "verbose", Help: "Log each snapshot"},
	{Name: "no-color", Help: "Disable colors"},
	{Name: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// Shells lists the shells GenerateCompletion supports.
var Shells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The writer receiving the script.
//   - shell: "bash", "zsh" or "fish".
//   - sources: The counter source names offered for -source.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, sources []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(sources)
	case "zsh":
		script = zshCompletion(sources)
	case "fish":
		script = fishCompletion(sources)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func (f FlagCompletion) names() []string {
	names := []string{"-" + f.Name}
	if f.Alias != "" {
		names = append(names, "-"+f.Alias)
	}
	return names
}

func (f FlagCompletion) values(sources []string) []string {
	if f.IsSource {
		return sources
	}
	return f.Values
}

func bashCompletion(sources []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, f.names()...)
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.values(sources)) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.values(sources), " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(f.names(), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for scrapster
# Add this to your ~/.bashrc or ~/.bash_completion

_scrapster_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _scrapster_completions scrapster
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(sources []string) string {
	var args []string
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(f.values(sources)) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.values(sources), " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		if f.Alias != "" {
			args = append(args, fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'", f.Name, f.Alias, f.Name, f.Alias, f.Help, suffix))
		} else {
			args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, suffix))
		}
	}

	return fmt.Sprintf(`#compdef scrapster

# Zsh completion script for scrapster
# Place this file in a directory of $fpath

_scrapster() {
    _arguments -s \
%s
}

_scrapster "$@"
`, strings.Join(args, " \\\n"))
}

func fishCompletion(sources []string) string {
	lines := []string{
		"# Fish completion script for scrapster",
		"# Add this to ~/.config/fish/completions/scrapster.fish",
		"",
		"complete -c scrapster -f",
	}
	for _, f := range flagRegistry {
		for _, name := range f.names() {
			parts := []string{"complete -c scrapster", "-o " + strings.TrimPrefix(name, "-"), fmt.Sprintf("-d '%s'", f.Help)}
			switch {
			case f.IsFile:
				parts = append(parts, "-rF")
			case len(f.values(sources)) > 0:
				parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.values(sources), " ")))
			case f.ValueName != "":
				parts = append(parts, "-x")
			}
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
