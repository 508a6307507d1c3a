// Package orchestration takes a point-in-time sample: two CPU counter
// snapshots separated by the requested interval plus one memory snapshot,
// reduced to a metrics.Sample. It also runs the example caller's loop of
// repeated one-shot samples and reports through presentation interfaces.
package orchestration
