// Package pipeline orchestrates the analysis of a phone number as an
// ordered sequence of lookup steps.
//
// Each step fills one report category by delegating to the lookup package.
// The Pipeline executes steps in order and respects context cancellation;
// BatchProcessor runs the pipeline for many numbers concurrently with a
// bounded degree of parallelism.
//
// Design decision: Steps implement a common interface rather than being
// plain functions because it keeps each category independently testable,
// gives uniform logging per lookup, and lets the CLI reconfigure
// categories (languages, reference time) without touching the others.
package pipeline
