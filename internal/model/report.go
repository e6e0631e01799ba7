package model

import (
	"time"

	"github.com/nyaruka/phonenumbers"
)

// Unknown is the placeholder recorded for every field whose external lookup
// returned no value. Fields are never omitted from a category; a missing
// lookup result always renders as this placeholder.
//
// Design decision: The underlying metadata library does not distinguish
// "no dataset for this region" from "dataset present but empty for this
// number". Both cases collapse to an empty result, so a single uniform
// placeholder is applied to both.
const Unknown = "unknown"

// OrUnknown returns s, or the Unknown placeholder when s is empty.
func OrUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// Report is the full analysis result for a single phone number.
// It groups the values returned by the external metadata lookups into the
// display categories rendered by the report writers.
//
// Design decision: We use one struct with typed category sub-structs rather
// than a generic map of categories because it keeps JSON output stable,
// makes the "every field present" invariant checkable at compile time, and
// simplifies database storage.
type Report struct {
	// Input is the raw string exactly as the user entered it.
	Input string `json:"input"`

	// DefaultRegion is the ISO 3166-1 alpha-2 region used as the parsing
	// fallback for numbers entered without a country code.
	DefaultRegion string `json:"default_region"`

	// DateAnalyzed is when the lookup was performed. It is excluded from
	// JSON report output so that repeated lookups of the same number
	// produce byte-identical reports; the history database stores it in a
	// dedicated column instead.
	DateAnalyzed time.Time `json:"-"`

	// Parsed is the structured number produced by the parse step.
	// It is carried on the report so later lookup steps can key off it,
	// and excluded from serialization because every displayable value it
	// holds is copied into a category.
	Parsed *phonenumbers.PhoneNumber `json:"-"`

	// === Display Categories ===

	// Formats contains the number rendered in each standard format.
	Formats NumberFormats `json:"number_formats"`

	// Validation contains the validity checks for the number.
	Validation Validation `json:"validation"`

	// Structure describes the structural breakdown of the number.
	Structure Structure `json:"structure"`

	// Geographic contains region, country, and location information.
	Geographic Geographic `json:"geographic_info"`

	// Timezone contains the timezones associated with the number and the
	// local time in the primary zone.
	Timezone TimezoneInfo `json:"timezone_info"`

	// Service contains carrier and number-type information.
	Service ServiceInfo `json:"service_info"`

	// Technical contains dialing metadata for the number's region.
	Technical TechnicalData `json:"technical_data"`

	// Examples contains example numbers of each type for the region.
	Examples []ExampleNumber `json:"examples,omitempty"`

	// Analysis contains derived metrics: confidence score and risk.
	Analysis Analysis `json:"analysis"`

	// === Lookup State ===

	// PerformedLookups lists the lookup steps that were executed.
	PerformedLookups []string `json:"performed_lookups,omitempty"`

	// Error contains any error that occurred during analysis.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NumberFormats contains the number rendered in each standard format.
type NumberFormats struct {
	// Input is the raw user input, verbatim.
	Input string `json:"input_number"`

	// E164 is the number in E.164 format (+<country code><national number>).
	E164 string `json:"e164_format"`

	// International is the human-readable international format.
	International string `json:"international_format"`

	// National is the national dialing format for the number's region.
	National string `json:"national_format"`

	// RFC3966 is the tel: URI form of the number.
	RFC3966 string `json:"rfc3966_format"`

	// CleanedInput is the raw input with everything except digits and a
	// leading plus stripped.
	CleanedInput string `json:"raw_input_cleaned"`
}

// Validation contains the validity checks reported by the parsing library.
type Validation struct {
	// IsValid reports whether the number is valid for its region's plan.
	IsValid bool `json:"is_valid_number"`

	// IsPossible reports whether the number length is plausible.
	IsPossible bool `json:"is_possible_number"`

	// IsValidForRegion reports validity against the resolved region.
	IsValidForRegion bool `json:"is_valid_for_region"`

	// Result is "VALID" or "INVALID" for display.
	Result string `json:"validation_result"`

	// PossibleReason describes the possibility check outcome
	// (e.g. IS_POSSIBLE, TOO_SHORT, TOO_LONG).
	PossibleReason string `json:"possible_reason"`
}

// Structure describes the structural breakdown of the parsed number.
type Structure struct {
	// CountryCode is the numeric country calling code (e.g. 44).
	CountryCode int `json:"country_code"`

	// NationalNumber is the national significant number.
	NationalNumber string `json:"national_number"`

	// NationalNumberLength is the digit count of the national number.
	NationalNumberLength int `json:"national_number_length"`

	// TotalDigits is the digit count of the E.164 form.
	TotalDigits int `json:"total_digits"`

	// HasExtension reports whether an extension was parsed.
	HasExtension bool `json:"has_extension"`

	// Extension is the parsed extension, or the Unknown placeholder.
	Extension string `json:"extension"`

	// ItalianLeadingZero reports whether the national number carries a
	// significant leading zero.
	ItalianLeadingZero bool `json:"has_italian_leading_zero"`

	// LeadingZeros is the number of significant leading zeros.
	LeadingZeros int `json:"number_of_leading_zeros"`
}

// Geographic contains region, country, and location information.
type Geographic struct {
	// RegionCode is the ISO 3166-1 alpha-2 region (e.g. "GB").
	RegionCode string `json:"region_code"`

	// CountryName is the short English country name (e.g. "United Kingdom").
	CountryName string `json:"country_name"`

	// CountryAlpha3 is the ISO 3166-1 alpha-3 code (e.g. "GBR").
	CountryAlpha3 string `json:"country_alpha_3"`

	// CountryNumeric is the ISO 3166-1 numeric code as a string (e.g. "826").
	CountryNumeric string `json:"country_numeric_code"`

	// Capital is the country's capital city.
	Capital string `json:"capital"`

	// Continent is the country's continental region.
	Continent string `json:"continent"`

	// AssociatedRegions lists all regions sharing the country calling code.
	AssociatedRegions []string `json:"associated_regions,omitempty"`

	// RegionCount is the number of associated regions.
	RegionCount int `json:"region_count_for_country_code"`

	// MultiRegion reports whether the calling code spans several regions
	// (e.g. +1 covers the US, Canada, and Caribbean territories).
	MultiRegion bool `json:"is_multi_region_country_code"`

	// PrimaryLocation is the geocoder description for the number in the
	// primary language.
	PrimaryLocation string `json:"primary_location"`

	// AlternateLocations maps additional language tags to geocoder
	// descriptions that differ from the primary one.
	AlternateLocations map[string]string `json:"alternate_locations,omitempty"`

	// City is the first component of a comma-separated location.
	City string `json:"city"`

	// StateProvince is the second component of a comma-separated location.
	StateProvince string `json:"state_province"`

	// LocationConfidence is "high", "medium", or "low" depending on how
	// specific the geocoder description is.
	LocationConfidence string `json:"location_confidence"`

	// AreaCode is the area code extracted from the national number.
	AreaCode string `json:"area_code"`

	// ExchangeCode is the exchange portion following the area code.
	ExchangeCode string `json:"exchange_code"`

	// SubscriberNumber is the remaining subscriber portion.
	SubscriberNumber string `json:"subscriber_number"`

	// NANPFormat reports whether the number follows the North American
	// Numbering Plan ten-digit layout.
	NANPFormat bool `json:"is_nanp_format"`
}

// ZoneDetail describes the local clock state of a single timezone.
type ZoneDetail struct {
	// Zone is the IANA timezone name (e.g. "Europe/London").
	Zone string `json:"timezone"`

	// LocalTime is the local time in RFC 3339 format.
	LocalTime string `json:"local_time"`

	// UTCOffsetHours is the offset from UTC in hours.
	UTCOffsetHours float64 `json:"utc_offset_hours"`

	// Abbreviation is the zone abbreviation at the reference instant
	// (e.g. "GMT", "BST").
	Abbreviation string `json:"abbreviation"`

	// IsDST reports whether daylight saving time is in effect.
	IsDST bool `json:"is_dst"`
}

// TimezoneInfo contains the timezones associated with the number.
type TimezoneInfo struct {
	// Zones lists all IANA timezone names for the number.
	Zones []string `json:"all_timezones,omitempty"`

	// Count is the number of associated timezones.
	Count int `json:"timezone_count"`

	// Primary is the first associated timezone, or the Unknown placeholder.
	Primary string `json:"primary_timezone"`

	// SpansMultiple reports whether the number maps to several timezones.
	SpansMultiple bool `json:"spans_multiple_timezones"`

	// LocalTime is the local time in the primary zone, RFC 3339.
	LocalTime string `json:"local_time"`

	// LocalTime12h is the local time in 12-hour clock form.
	LocalTime12h string `json:"local_time_12h"`

	// LocalDate is the local date in the primary zone (YYYY-MM-DD).
	LocalDate string `json:"local_date"`

	// UTCOffset is the offset string (e.g. "+0100").
	UTCOffset string `json:"utc_offset_string"`

	// UTCOffsetHours is the offset from UTC in hours.
	UTCOffsetHours float64 `json:"utc_offset_hours"`

	// IsDST reports whether daylight saving time is in effect in the
	// primary zone.
	IsDST bool `json:"is_dst"`

	// Abbreviation is the primary zone's abbreviation.
	Abbreviation string `json:"timezone_abbreviation"`

	// ZoneDetails holds per-zone clock state when the number spans
	// multiple timezones.
	ZoneDetails []ZoneDetail `json:"all_timezone_details,omitempty"`
}

// ServiceInfo contains carrier and number-type information.
type ServiceInfo struct {
	// Carrier is the likely originating carrier, or the Unknown placeholder.
	Carrier string `json:"carrier_name"`

	// CarrierAvailable reports whether carrier data was resolved.
	CarrierAvailable bool `json:"carrier_available"`

	// NumberType is the human-readable number type (e.g. "Mobile").
	NumberType string `json:"number_type"`

	// IsMobile reports a mobile number.
	IsMobile bool `json:"is_mobile"`

	// IsFixedLine reports a fixed-line number.
	IsFixedLine bool `json:"is_fixed_line"`

	// IsFixedOrMobile reports a number that may be either.
	IsFixedOrMobile bool `json:"is_fixed_or_mobile"`

	// IsVoIP reports a VoIP number.
	IsVoIP bool `json:"is_voip"`

	// IsTollFree reports a toll-free number.
	IsTollFree bool `json:"is_toll_free"`

	// IsPremiumRate reports a premium-rate number.
	IsPremiumRate bool `json:"is_premium_rate"`

	// IsSpecialService reports premium-rate, shared-cost, or UAN numbers.
	IsSpecialService bool `json:"is_special_service"`

	// LikelyBillable reports whether calling the number likely incurs
	// normal charges (false for toll-free and voicemail numbers).
	LikelyBillable bool `json:"likely_billable"`
}

// TechnicalData contains dialing metadata for the number's region.
type TechnicalData struct {
	// NationalDialingPrefix is the prefix dialed before the national
	// number for domestic calls (e.g. "0" for GB).
	NationalDialingPrefix string `json:"national_dialing_prefix"`

	// CountryCallingCode is the calling code with a leading plus.
	CountryCallingCode string `json:"country_calling_code"`

	// IsNANPA reports whether the region is part of the North American
	// Numbering Plan.
	IsNANPA bool `json:"is_nanpa_region"`

	// GeoAreaCodeLength is the length of the geographical area code of
	// the number, or zero when the number has none.
	GeoAreaCodeLength int `json:"geographical_area_code_length"`

	// DestinationCodeLength is the length of the national destination
	// code, or zero when the number has none.
	DestinationCodeLength int `json:"national_destination_code_length"`
}

// ExampleNumber is an example number of a given type for the region.
type ExampleNumber struct {
	// Type is the human-readable number type (e.g. "Mobile").
	Type string `json:"type"`

	// National is the example in national format.
	National string `json:"national"`

	// International is the example in international format.
	International string `json:"international"`
}

// Analysis contains metrics derived from the other categories.
type Analysis struct {
	// DataSources lists the offline datasets consulted.
	DataSources []string `json:"data_sources"`

	// DataPoints is the number of populated fields across all categories.
	DataPoints int `json:"total_data_points"`

	// ConfidenceScore is a 0-100 score weighted by which lookups resolved.
	ConfidenceScore int `json:"confidence_score"`

	// Risk is the heuristic risk assessment for the number.
	Risk RiskAssessment `json:"risk_assessment"`
}

// NewReport creates a Report for the given raw input.
func NewReport(input string) *Report {
	return &Report{
		Input:        input,
		DateAnalyzed: time.Now(),
	}
}

// MarkLookup records that the named lookup step was executed.
func (r *Report) MarkLookup(name string) {
	r.PerformedLookups = append(r.PerformedLookups, name)
}
