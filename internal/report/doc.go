// Package report writes reconciliation results to timestamped delimited
// files in the configured output directory.
package report
