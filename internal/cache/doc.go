// Package cache keeps simulation results on disk so the CLI does not
// recompute a recipe it already simulated against the same catalog.
//
// Entries are JSON files named after a SHA256 key of the catalog version and
// the canonical query. They expire after a configurable TTL.
package cache
