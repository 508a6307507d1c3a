//go:build linux

package counters

func defaultSource(procRoot string) Source {
	return NewProcfsSource(procRoot)
}

func platformSources(procRoot string) map[string]func() Source {
	return map[string]func() Source{
		"procfs": func() Source { return NewProcfsSource(procRoot) },
		"psutil": func() Source { return NewPsutilSource() },
	}
}
