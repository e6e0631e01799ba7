// Package config provides configuration structures and utilities for the
// phone number lookup tool. It defines the lookup options populated from
// CLI flags, the optional YAML configuration file, and report generation
// preferences.
package config
