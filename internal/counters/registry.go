package counters

import (
	"sort"
	"strings"

	apperrors "github.com/agbru/scrapster/internal/errors"
)

// SourceAuto selects the platform default.
const SourceAuto = "auto"

// Default returns the preferred Source for the running platform.
func Default() Source {
	return defaultSource(DefaultProcRoot)
}

// New returns the Source registered under name. procRoot only affects the
// procfs variant; empty means DefaultProcRoot. Unknown names, and names not
// available on this platform, yield an apperrors.ConfigError.
func New(name, procRoot string) (Source, error) {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == SourceAuto {
		return defaultSource(procRoot), nil
	}
	builders := platformSources(procRoot)
	if build, ok := builders[name]; ok {
		return build(), nil
	}
	return nil, apperrors.NewConfigError("unknown counter source %q (available: %s)", name, strings.Join(Available(), ", "))
}

// Available lists the source names usable on this platform, sorted, with
// "auto" first.
func Available() []string {
	names := make([]string, 0, 4)
	for name := range platformSources(DefaultProcRoot) {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{SourceAuto}, names...)
}
