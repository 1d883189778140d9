// Package coverage implements the scan-coverage reconciliation workflows
// used by the scangap CLI.
//
// It exposes CommandBuilder for wiring the coverage Cobra commands, Service
// for driving the fetch, authentication, reconciliation, and reporting
// pipeline programmatically, and supporting abstractions for the GitHub and
// Checkmarx collaborators.
package coverage
