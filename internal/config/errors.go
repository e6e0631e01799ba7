package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoNumber is returned when no phone number is specified.
	// This error occurs when neither --batch nor a positional argument
	// provides a number to analyze.
	ErrNoNumber = errors.New("no phone number specified: provide a number or use --batch")

	// ErrInvalidRegion is returned when the default region is not a
	// two-letter ISO 3166-1 alpha-2 code.
	ErrInvalidRegion = errors.New("invalid region: must be a two-letter ISO 3166-1 alpha-2 code")

	// ErrInvalidLanguage is returned when a geocoding language is not a
	// well-formed BCP 47 language tag.
	ErrInvalidLanguage = errors.New("invalid language: must be a BCP 47 language tag")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent lookups, effectively
	// stopping batch processing.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
