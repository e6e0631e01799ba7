package config

// Settings holds the lookup options that can be set from the configuration
// file. All fields are optional; empty values fall back to the built-in
// defaults or CLI flags.
type Settings struct {
	// Region is the fallback ISO 3166-1 alpha-2 region for parsing numbers
	// entered without a country code.
	Region string `yaml:"region,omitempty"`

	// Language is the BCP 47 language tag for geocoder and carrier
	// descriptions.
	Language string `yaml:"language,omitempty"`

	// ExtraLanguages are additional geocoding languages to query.
	ExtraLanguages []string `yaml:"extraLanguages,omitempty"`

	// BatchSize is the number of concurrent lookups for batch processing.
	BatchSize int `yaml:"batchSize,omitempty"`

	// NoSave disables writing lookup results to the history database.
	NoSave bool `yaml:"noSave,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// File represents the structure of the .phonelookup configuration file.
type File struct {
	// Defaults contains settings applied to every lookup unless overridden
	// by a region-specific entry or a CLI flag.
	Defaults Settings `yaml:"defaults,omitempty"`

	// Regions maps ISO 3166-1 alpha-2 region codes to settings applied
	// when the resolved region matches. This allows, for example, querying
	// the geocoder in Japanese for numbers that resolve to JP.
	Regions map[string]Settings `yaml:"regions,omitempty"`
}

// GetRegionSettings returns the settings for a specific region code.
// It merges the region-specific settings with the file defaults.
func (cf *File) GetRegionSettings(regionCode string) Settings {
	// Start with defaults
	result := cf.Defaults

	// Override with region-specific settings if present
	if rs, ok := cf.Regions[regionCode]; ok {
		if rs.Region != "" {
			result.Region = rs.Region
		}
		if rs.Language != "" {
			result.Language = rs.Language
		}
		if len(rs.ExtraLanguages) > 0 {
			result.ExtraLanguages = rs.ExtraLanguages
		}
		if rs.BatchSize != 0 {
			result.BatchSize = rs.BatchSize
		}
		if rs.NoSave {
			result.NoSave = true
		}
		if rs.DBDir != "" {
			result.DBDir = rs.DBDir
		}
	}

	return result
}
