// Package model defines the core data structures used throughout phonelookup.
//
// This package contains the following main types:
//   - Report: The full analysis result for one phone number, grouped into
//     display categories (formats, validation, structure, geography, ...)
//   - Summary: A condensed view of the most important fields for quick review
//   - RiskLevel / RiskAssessment: Heuristic risk classification of a number
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (lookup, pipeline, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. Every category field that an external lookup could not
// resolve is populated with the Unknown placeholder rather than omitted, so
// consumers always see the full field set.
package model
