// Package catalog holds the reference data of the engine: impact definitions,
// processes, materials, product categories, countries and the distance table.
//
// A Snapshot is built once with New (or one of the loaders) and never changes
// afterwards. Building it validates every cross reference and resolves the
// well-known processes, so a Snapshot that exists is always usable; failures
// are reported as *ConfigurationError. Per-request lookups that miss return a
// *LookupError.
package catalog
