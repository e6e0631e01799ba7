// Package log provides privacy-aware logging functionality with automatic
// masking of phone numbers, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of phone numbers in log attributes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// Phone numbers are personally identifiable information. The SecureHandler
// masks the subscriber portion of any phone-number-like value in log output,
// keeping only the country code prefix and the last two digits:
//   - Attribute keys that name a number (phone, number, msisdn, e164, input)
//   - Values that look like dialable numbers, regardless of key name
//
// Even in verbose mode, numbers are masked so that debug logs can be shared
// in bug reports without exposing the numbers that were analyzed.
//
// # Usage
//
//	// Create a privacy-aware logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("lookup started",
//	    "number", "+442079460958",  // Will be masked to "+44********58"
//	    "region", "GB",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
