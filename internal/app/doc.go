// Package app wires configuration, counter source, sampler and presenters
// into the scrapster command.
package app
