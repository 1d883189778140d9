// Package reconcile partitions fetched repository inventories against
// scanned-project registries and computes coverage statistics.
package reconcile
