package model

// RiskLevel classifies how much caution a number warrants before calling it.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and ordering. The String() method provides
// human-readable output when needed.
type RiskLevel int

const (
	// RiskLow indicates a valid number with no concerning attributes.
	RiskLow RiskLevel = iota

	// RiskMedium indicates attributes that warrant attention before
	// calling, such as premium-rate billing or VoIP location ambiguity.
	RiskMedium

	// RiskHigh indicates the number failed validation and should not be
	// trusted.
	RiskHigh
)

// String returns a human-readable representation of the risk level.
func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// RiskAssessment is the heuristic risk classification of a number.
type RiskAssessment struct {
	// Level is the overall risk classification.
	Level RiskLevel `json:"-"`

	// LevelText is the human-readable level for serialization.
	LevelText string `json:"risk_level"`

	// Factors lists the individual reasons contributing to the level.
	Factors []string `json:"risk_factors,omitempty"`

	// SafeToCall reports whether the number is reasonable to dial:
	// it validated successfully and the level is not high.
	SafeToCall bool `json:"is_safe_to_call"`
}

// Escalate raises the assessment to at least the given level and records
// the reason. Levels never decrease.
func (a *RiskAssessment) Escalate(level RiskLevel, reason string) {
	if level > a.Level {
		a.Level = level
		a.LevelText = level.String()
	}
	a.Factors = append(a.Factors, reason)
}
