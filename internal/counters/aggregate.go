package counters

// AggregateCoreID is the core ID used by sources that only report totals
// over all processors.
const AggregateCoreID = "cpu"

// systemTimesCore converts GetSystemTimes-style totals, where kernel time
// includes idle time, into an aggregate core.
func systemTimesCore(idle, kernel, user uint64) CoreTimes {
	var system uint64
	if kernel >= idle {
		system = kernel - idle
	}
	return NewCoreTimes(AggregateCoreID, ModeTimes{User: user, System: system, Idle: idle})
}
