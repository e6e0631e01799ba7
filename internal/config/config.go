package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
)

// Default configuration values.
const (
	// DefaultRegion is the fallback region used to parse numbers entered
	// without a country code. "US" matches the most common expectation for
	// bare ten-digit input; users in other regions override it with the
	// --region flag or the configuration file.
	DefaultRegion = "US"

	// DefaultLanguage is the language used for geocoder and carrier
	// descriptions. The underlying datasets have the widest coverage in
	// English.
	DefaultLanguage = "en"

	// DefaultBatchSize of 4 concurrent lookups balances throughput with
	// resource usage. Lookups are CPU-bound metadata queries, so there is
	// little benefit in going much wider.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "phonelookup"
)

// Config holds all configuration options for a lookup run.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., LookupConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// DefaultRegion is the ISO 3166-1 alpha-2 region used as the parsing
	// fallback for numbers entered without a leading "+" country code.
	DefaultRegion string

	// Language is the BCP 47 language tag used for geocoder and carrier
	// descriptions.
	Language string

	// ExtraLanguages are additional language tags to query the geocoder
	// with. Descriptions that differ from the primary language are included
	// in the report as alternate locations.
	ExtraLanguages []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent lookups when processing a
	// batch file of numbers.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .phonelookup in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Overrides holds defaults and per-region overrides loaded from the
	// configuration file.
	Overrides *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Numbers is the list of phone numbers to analyze.
	Numbers []string

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/phonelookup on Linux).
	DBDir string

	// NoSave disables writing lookup results to the history database.
	NoSave bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (region, language,
// batch size). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		DefaultRegion: DefaultRegion,
		Language:      DefaultLanguage,
		BatchSize:     DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for the tool.
// On Linux: ~/.local/share/phonelookup
// On macOS: ~/Library/Application Support/phonelookup
// On Windows: %LOCALAPPDATA%\phonelookup
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the tool.
// On Linux: ~/.config/phonelookup
// On macOS: ~/Library/Application Support/phonelookup
// On Windows: %APPDATA%\phonelookup
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for the tool.
// On Linux: ~/.cache/phonelookup
// On macOS: ~/Library/Caches/phonelookup
// On Windows: %LOCALAPPDATA%\phonelookup\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any lookup begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one number to analyze
	if len(c.Numbers) == 0 {
		return ErrNoNumber
	}

	// The fallback region must look like an ISO 3166-1 alpha-2 code.
	// Whether the region is known to the numbering plan metadata is
	// checked at parse time.
	if len(c.DefaultRegion) != 2 || !isASCIIAlpha(c.DefaultRegion) {
		return ErrInvalidRegion
	}

	// Geocoding languages must be well-formed BCP 47 tags
	for _, tag := range append([]string{c.Language}, c.ExtraLanguages...) {
		if _, err := language.Parse(tag); err != nil {
			return ErrInvalidLanguage
		}
	}

	// BatchSize must be positive; zero would mean no lookups
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// isASCIIAlpha reports whether s consists only of ASCII letters.
func isASCIIAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
