package pipeline

import (
	"context"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/razberi-py/phone-number-lookup/internal/lookup"
	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// ParseStep parses the raw input into a structured number.
// This step is the foundation of the pipeline: every category lookup keys
// off the parsed number it stores on the report, and it is the only step
// that can fail.
type ParseStep struct {
	// defaultRegion is the parsing fallback for numbers entered without a
	// country code.
	defaultRegion string
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseDefaultRegion sets the fallback region for national-format input.
func WithParseDefaultRegion(region string) ParseStepOption {
	return func(s *ParseStep) {
		s.defaultRegion = region
	}
}

// NewParseStep creates a new parse step.
func NewParseStep(opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{defaultRegion: "US"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string { return "parse" }

// Do executes the parse step.
func (s *ParseStep) Do(_ context.Context, report *model.Report) error {
	num, err := lookup.Parse(report.Input, s.defaultRegion)
	if err != nil {
		return err
	}

	report.Parsed = num
	report.DefaultRegion = s.defaultRegion
	return nil
}

// FormatsStep renders the number in every standard format.
type FormatsStep struct{}

// NewFormatsStep creates a new formats step.
func NewFormatsStep() *FormatsStep { return &FormatsStep{} }

// Name returns the step name.
func (s *FormatsStep) Name() string { return "formats" }

// Do executes the formats step.
func (s *FormatsStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Formats = lookup.Formats(report.Parsed, report.Input)
	return nil
}

// ValidationStep runs the validity checks.
type ValidationStep struct{}

// NewValidationStep creates a new validation step.
func NewValidationStep() *ValidationStep { return &ValidationStep{} }

// Name returns the step name.
func (s *ValidationStep) Name() string { return "validation" }

// Do executes the validation step.
func (s *ValidationStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Validation = lookup.Validation(report.Parsed)
	return nil
}

// StructureStep records the structural breakdown of the number.
type StructureStep struct{}

// NewStructureStep creates a new structure step.
func NewStructureStep() *StructureStep { return &StructureStep{} }

// Name returns the step name.
func (s *StructureStep) Name() string { return "structure" }

// Do executes the structure step.
func (s *StructureStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Structure = lookup.Structure(report.Parsed)
	return nil
}

// GeographicStep resolves region, country, and location information.
type GeographicStep struct {
	// language is the primary geocoder language.
	language string

	// extraLanguages are additional geocoder languages to report when
	// their descriptions differ from the primary one.
	extraLanguages []string
}

// GeographicStepOption configures a GeographicStep.
type GeographicStepOption func(*GeographicStep)

// WithGeographicLanguage sets the primary geocoder language.
func WithGeographicLanguage(lang string) GeographicStepOption {
	return func(s *GeographicStep) {
		s.language = lang
	}
}

// WithGeographicExtraLanguages sets the additional geocoder languages.
func WithGeographicExtraLanguages(langs []string) GeographicStepOption {
	return func(s *GeographicStep) {
		s.extraLanguages = langs
	}
}

// NewGeographicStep creates a new geographic step.
func NewGeographicStep(opts ...GeographicStepOption) *GeographicStep {
	s := &GeographicStep{language: "en"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *GeographicStep) Name() string { return "geographic" }

// Do executes the geographic step.
func (s *GeographicStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Geographic = lookup.Geographic(report.Parsed, s.language, s.extraLanguages)
	return nil
}

// TimezoneStep resolves the timezones for the number and the local clock
// state at the reference instant.
type TimezoneStep struct {
	// ref is the reference instant for local-time resolution.
	ref time.Time
}

// TimezoneStepOption configures a TimezoneStep.
type TimezoneStepOption func(*TimezoneStep)

// WithTimezoneReference sets the reference instant.
// Injecting the instant keeps repeated runs byte-identical and makes the
// step testable against fixed dates.
func WithTimezoneReference(ref time.Time) TimezoneStepOption {
	return func(s *TimezoneStep) {
		s.ref = ref
	}
}

// NewTimezoneStep creates a new timezone step.
// The reference instant defaults to the time of construction.
func NewTimezoneStep(opts ...TimezoneStepOption) *TimezoneStep {
	s := &TimezoneStep{ref: time.Now()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *TimezoneStep) Name() string { return "timezone" }

// Do executes the timezone step.
func (s *TimezoneStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Timezone = lookup.Timezones(report.Parsed, s.ref)
	return nil
}

// ServiceStep resolves carrier and number-type information.
type ServiceStep struct {
	// language is the carrier-table language.
	language string
}

// ServiceStepOption configures a ServiceStep.
type ServiceStepOption func(*ServiceStep)

// WithServiceLanguage sets the carrier-table language.
func WithServiceLanguage(lang string) ServiceStepOption {
	return func(s *ServiceStep) {
		s.language = lang
	}
}

// NewServiceStep creates a new service step.
func NewServiceStep(opts ...ServiceStepOption) *ServiceStep {
	s := &ServiceStep{language: "en"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ServiceStep) Name() string { return "service" }

// Do executes the service step.
func (s *ServiceStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Service = lookup.Service(report.Parsed, s.language)
	return nil
}

// TechnicalStep resolves dialing metadata for the number's region.
type TechnicalStep struct{}

// NewTechnicalStep creates a new technical step.
func NewTechnicalStep() *TechnicalStep { return &TechnicalStep{} }

// Name returns the step name.
func (s *TechnicalStep) Name() string { return "technical" }

// Do executes the technical step.
func (s *TechnicalStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Technical = lookup.Technical(report.Parsed)
	return nil
}

// ExamplesStep collects example numbers for the number's region.
type ExamplesStep struct{}

// NewExamplesStep creates a new examples step.
func NewExamplesStep() *ExamplesStep { return &ExamplesStep{} }

// Name returns the step name.
func (s *ExamplesStep) Name() string { return "examples" }

// Do executes the examples step.
func (s *ExamplesStep) Do(_ context.Context, report *model.Report) error {
	if report.Parsed == nil {
		return nil
	}
	report.Examples = lookup.Examples(phonenumbers.GetRegionCodeForNumber(report.Parsed))
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// DefaultRegion is the parsing fallback region.
	DefaultRegion string

	// Language is the primary lookup language for geocoder and carrier
	// tables.
	Language string

	// ExtraLanguages are additional geocoder languages.
	ExtraLanguages []string

	// ReferenceTime is the instant used for local-time resolution.
	// The zero value means "now, captured at pipeline construction".
	ReferenceTime time.Time
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineDefaultRegion sets the parsing fallback region.
func WithPipelineDefaultRegion(region string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.DefaultRegion = region
	}
}

// WithPipelineLanguage sets the primary lookup language.
func WithPipelineLanguage(lang string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Language = lang
	}
}

// WithPipelineExtraLanguages sets the additional geocoder languages.
func WithPipelineExtraLanguages(langs []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ExtraLanguages = langs
	}
}

// WithPipelineReferenceTime sets the reference instant for local-time
// resolution.
func WithPipelineReferenceTime(ref time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ReferenceTime = ref
	}
}

// DefaultPipeline creates a pipeline with all analysis steps configured in
// display order.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineLanguage, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		DefaultRegion: "US",
		Language:      "en",
		ReferenceTime: time.Now(),
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewParseStep(WithParseDefaultRegion(cfg.DefaultRegion)),
		NewFormatsStep(),
		NewValidationStep(),
		NewStructureStep(),
		NewGeographicStep(
			WithGeographicLanguage(cfg.Language),
			WithGeographicExtraLanguages(cfg.ExtraLanguages),
		),
		NewTimezoneStep(WithTimezoneReference(cfg.ReferenceTime)),
		NewServiceStep(WithServiceLanguage(cfg.Language)),
		NewTechnicalStep(),
		NewExamplesStep(),
		NewAnalysisStep(),
	)

	return p
}
