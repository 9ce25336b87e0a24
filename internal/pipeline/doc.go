// Package pipeline orchestrates input discovery, per-file processing, and
// batch summary reporting.
//
// Each file runs strictly in order: extract → normalize (year included) →
// print → render → rename. Files share no state; a failure is counted and
// the run moves on unless --fail-fast is set.
package pipeline
