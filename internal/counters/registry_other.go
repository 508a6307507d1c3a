//go:build !linux && !windows

package counters

// DefaultProcRoot has no meaning without procfs; it exists so callers can
// pass it through unconditionally.
const DefaultProcRoot = ""

func defaultSource(string) Source {
	return NewPsutilSource()
}

func platformSources(string) map[string]func() Source {
	return map[string]func() Source{
		"psutil": func() Source { return NewPsutilSource() },
	}
}
