//go:build windows

package counters

// DefaultProcRoot has no meaning on Windows; it exists so callers can pass it
// through unconditionally.
const DefaultProcRoot = ""

func defaultSource(string) Source {
	return NewWindowsSource()
}

func platformSources(string) map[string]func() Source {
	return map[string]func() Source{
		"windows": func() Source { return NewWindowsSource() },
		"psutil":  func() Source { return NewPsutilSource() },
	}
}
