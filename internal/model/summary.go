package model

// Summary is a condensed view of an analysis result.
// It extracts the fields most users want at a glance from the full report.
//
// Design decision: We create a separate summary type rather than just
// printing parts of Report because:
// 1. It provides a consistent, curated view of the most important fields
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from data collection
type Summary struct {
	// Input is the raw string the user entered.
	Input string `json:"input"`

	// E164 is the normalized E.164 form of the number.
	E164 string `json:"e164"`

	// IsValid reports whether the number validated.
	IsValid bool `json:"is_valid"`

	// Location is the primary geocoder description.
	Location string `json:"location"`

	// Country is the short English country name.
	Country string `json:"country"`

	// Carrier is the resolved carrier name.
	Carrier string `json:"carrier"`

	// NumberType is the human-readable number type.
	NumberType string `json:"number_type"`

	// ConfidenceScore is the 0-100 confidence score.
	ConfidenceScore int `json:"confidence_score"`

	// RiskLevel is the human-readable risk level.
	RiskLevel string `json:"risk_level"`

	// RiskFactors lists the reasons behind the risk level.
	RiskFactors []string `json:"risk_factors,omitempty"`

	// DataPoints is the number of populated report fields.
	DataPoints int `json:"data_points"`

	// Error contains any error message if the analysis failed.
	Error string `json:"error,omitempty"`
}

// NewSummary creates a Summary from a full Report.
func NewSummary(report *Report) *Summary {
	s := &Summary{
		Input:           report.Input,
		E164:            report.Formats.E164,
		IsValid:         report.Validation.IsValid,
		Location:        report.Geographic.PrimaryLocation,
		Country:         report.Geographic.CountryName,
		Carrier:         report.Service.Carrier,
		NumberType:      report.Service.NumberType,
		ConfidenceScore: report.Analysis.ConfidenceScore,
		RiskLevel:       report.Analysis.Risk.LevelText,
		RiskFactors:     report.Analysis.Risk.Factors,
		DataPoints:      report.Analysis.DataPoints,
	}

	if report.Error != nil {
		s.Error = report.Error.Error()
	}
	return s
}
