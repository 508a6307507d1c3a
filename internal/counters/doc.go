// Package counters reads cumulative OS counters for CPU time and memory.
//
// Each OS counter mechanism is a distinct implementation of [Source]. The
// variant is chosen once, at startup, by [Default] or [New]; callers never
// branch on the platform afterwards.
//
// Sources hold no mutable state. Every call re-reads the OS interface, so a
// single Source value may be shared by concurrent callers.
package counters
