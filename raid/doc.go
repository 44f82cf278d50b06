// Package raid provides the hit-route optimization engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - record.go: DamageRecord, Composition and the conflict rule
//   - solver.go: the per-target combination solver (greedy scan, pair lookahead, last-hits fallback)
//   - planner.go: route attempts, the commit step, serial and parallel enumeration
//   - selector.go: route ranking and deduplication
//
// # Data Flow
//
// Raw targets and records are indexed once into an immutable Roster. For every
// ordering of the targets (Permutations, Heap's algorithm) the Planner builds a
// fresh Ledger and consumed set, then per target: computes eligibility, refreshes
// target-relative weights, calls Solve, commits the selection. SelectBest ranks the
// resulting routes.
//
// Sub-packages:
//   - raid/trace: per-solve decision records and summaries (no dependency on raid)
//   - raid/sheet: reading targets and hit sheets (CSV, JSON, YAML)
//   - raid/report: structured and text reports of ranked routes
package raid
