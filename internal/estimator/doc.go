// Package estimator turns raw counter snapshots into usage figures.
//
// Every function here is pure: it reads only its arguments and returns the
// same result for the same input.
package estimator
