package pipeline

import (
	"context"
	"encoding/json"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// dataSources lists the offline datasets the other steps consult.
var dataSources = []string{"libphonenumber", "iso3166", "tzdata"}

// AnalysisStep derives the confidence score and risk assessment from the
// categories the earlier steps populated. It must run last.
type AnalysisStep struct{}

// NewAnalysisStep creates a new analysis step.
func NewAnalysisStep() *AnalysisStep { return &AnalysisStep{} }

// Name returns the step name.
func (s *AnalysisStep) Name() string { return "analysis" }

// Do executes the analysis step.
func (s *AnalysisStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}

	report.Analysis = model.Analysis{
		DataSources:     dataSources,
		ConfidenceScore: confidenceScore(report),
		Risk:            assessRisk(report),
	}
	report.Analysis.DataPoints = countDataPoints(report)
	return nil
}

// confidenceScore weighs which lookups resolved into a 0-100 score.
// The weights favor validity and location, the two signals users care
// about most.
func confidenceScore(report *model.Report) int {
	score := 0
	if report.Validation.IsValid {
		score += 30
	}
	if report.Geographic.PrimaryLocation != model.Unknown {
		score += 25
	}
	if report.Service.CarrierAvailable {
		score += 20
	}
	if report.Geographic.AreaCode != model.Unknown {
		score += 15
	}
	if report.Geographic.City != model.Unknown {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// assessRisk derives the heuristic risk classification from the populated
// categories.
func assessRisk(report *model.Report) model.RiskAssessment {
	risk := model.RiskAssessment{
		Level:     model.RiskLow,
		LevelText: model.RiskLow.String(),
	}

	if !report.Validation.IsValid {
		risk.Escalate(model.RiskHigh, "number failed validation")
	}
	if report.Service.IsPremiumRate {
		risk.Escalate(model.RiskMedium, "premium rate number, charges may apply")
	}
	if report.Service.IsVoIP {
		risk.Escalate(model.RiskMedium, "VoIP number, location may not be accurate")
	}
	if report.Geographic.PrimaryLocation == model.Unknown {
		risk.Factors = append(risk.Factors, "location information unavailable")
	}

	risk.SafeToCall = report.Validation.IsValid && risk.Level < model.RiskHigh
	return risk
}

// countDataPoints counts the populated scalar fields across all categories.
// Fields holding the unknown placeholder are not counted.
//
// The count is taken from the JSON form of the report so it stays in sync
// with what the writers actually render.
func countDataPoints(report *model.Report) int {
	data, err := json.Marshal(report)
	if err != nil {
		return 0
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return 0
	}
	return countLeaves(tree)
}

// countLeaves walks a decoded JSON tree counting populated scalar leaves.
func countLeaves(v any) int {
	switch val := v.(type) {
	case map[string]any:
		n := 0
		for _, child := range val {
			n += countLeaves(child)
		}
		return n
	case []any:
		n := 0
		for _, child := range val {
			n += countLeaves(child)
		}
		return n
	case string:
		if val == "" || val == model.Unknown {
			return 0
		}
		return 1
	case nil:
		return 0
	default:
		// Numbers and booleans always count as populated.
		return 1
	}
}
