// Package logging provides the structured logging interface shared by the
// sampler and its command-line caller, backed by zerolog. Terminals get the
// console writer; -json runs get one JSON object per log line so stderr stays
// machine-readable alongside the JSON samples on stdout.
package logging
