package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting, one section per report category.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether fields holding the unknown placeholder
	// are shown. They are shown by default: the report contract is that
	// unresolved fields render as "unknown" rather than disappear.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show unresolved fields.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeFormats(&sb, report)
	w.writeValidation(&sb, report)
	w.writeStructure(&sb, report)
	w.writeGeographic(&sb, report)
	w.writeTimezone(&sb, report)
	w.writeService(&sb, report)
	w.writeTechnical(&sb, report)
	w.writeExamples(&sb, report)
	w.writeAnalysis(&sb, report)
	w.writeSummaryFooter(&sb, model.NewSummary(report))

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the condensed summary.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder
	w.writeSummaryFooter(&sb, summary)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                  PHONE NUMBER ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
	w.field(sb, "Input", report.Input)
	w.field(sb, "Default Region", report.DefaultRegion)
	sb.WriteString("\n")
}

// section writes a section divider with a title.
func (w *SimpleWriter) section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// field writes one labeled value line, skipping unresolved fields when
// showEmpty is disabled.
func (w *SimpleWriter) field(sb *strings.Builder, label, value string) {
	if !w.showEmpty && (value == model.Unknown || value == "") {
		return
	}
	fmt.Fprintf(sb, "  %-28s: %s\n", label, value)
}

// boolText renders a boolean as yes/no.
func boolText(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (w *SimpleWriter) writeFormats(sb *strings.Builder, report *model.Report) {
	w.section(sb, "NUMBER FORMATS")
	f := report.Formats
	w.field(sb, "E.164", f.E164)
	w.field(sb, "International", f.International)
	w.field(sb, "National", f.National)
	w.field(sb, "RFC 3966", f.RFC3966)
	w.field(sb, "Cleaned Input", f.CleanedInput)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeValidation(sb *strings.Builder, report *model.Report) {
	w.section(sb, "VALIDATION")
	v := report.Validation
	w.field(sb, "Valid", boolText(v.IsValid))
	w.field(sb, "Possible", boolText(v.IsPossible))
	w.field(sb, "Valid For Region", boolText(v.IsValidForRegion))
	w.field(sb, "Result", v.Result)
	w.field(sb, "Possible Reason", v.PossibleReason)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeStructure(sb *strings.Builder, report *model.Report) {
	w.section(sb, "STRUCTURE")
	s := report.Structure
	w.field(sb, "Country Code", strconv.Itoa(s.CountryCode))
	w.field(sb, "National Number", s.NationalNumber)
	w.field(sb, "National Number Length", strconv.Itoa(s.NationalNumberLength))
	w.field(sb, "Total Digits", strconv.Itoa(s.TotalDigits))
	w.field(sb, "Has Extension", boolText(s.HasExtension))
	w.field(sb, "Extension", s.Extension)
	w.field(sb, "Italian Leading Zero", boolText(s.ItalianLeadingZero))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeGeographic(sb *strings.Builder, report *model.Report) {
	w.section(sb, "GEOGRAPHIC INFO")
	g := report.Geographic
	w.field(sb, "Region Code", g.RegionCode)
	w.field(sb, "Country", g.CountryName)
	w.field(sb, "Country Alpha-3", g.CountryAlpha3)
	w.field(sb, "Country Numeric", g.CountryNumeric)
	w.field(sb, "Capital", g.Capital)
	w.field(sb, "Continent", g.Continent)
	if len(g.AssociatedRegions) > 0 {
		w.field(sb, "Associated Regions", strings.Join(g.AssociatedRegions, ", "))
	}
	w.field(sb, "Region Count", strconv.Itoa(g.RegionCount))
	w.field(sb, "Multi-Region Calling Code", boolText(g.MultiRegion))
	w.field(sb, "Primary Location", g.PrimaryLocation)
	for _, lang := range sortedKeys(g.AlternateLocations) {
		w.field(sb, "Location ("+lang+")", g.AlternateLocations[lang])
	}
	w.field(sb, "City", g.City)
	w.field(sb, "State/Province", g.StateProvince)
	w.field(sb, "Location Confidence", g.LocationConfidence)
	w.field(sb, "Area Code", g.AreaCode)
	w.field(sb, "Exchange Code", g.ExchangeCode)
	w.field(sb, "Subscriber Number", g.SubscriberNumber)
	w.field(sb, "NANP Format", boolText(g.NANPFormat))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeTimezone(sb *strings.Builder, report *model.Report) {
	w.section(sb, "TIMEZONE INFO")
	tz := report.Timezone
	if len(tz.Zones) > 0 {
		w.field(sb, "Timezones", strings.Join(tz.Zones, ", "))
	} else {
		w.field(sb, "Timezones", model.Unknown)
	}
	w.field(sb, "Timezone Count", strconv.Itoa(tz.Count))
	w.field(sb, "Primary Timezone", tz.Primary)
	w.field(sb, "Spans Multiple Zones", boolText(tz.SpansMultiple))
	w.field(sb, "Local Time", tz.LocalTime)
	w.field(sb, "Local Time (12h)", tz.LocalTime12h)
	w.field(sb, "Local Date", tz.LocalDate)
	w.field(sb, "UTC Offset", tz.UTCOffset)
	w.field(sb, "DST Active", boolText(tz.IsDST))
	w.field(sb, "Abbreviation", tz.Abbreviation)
	for _, d := range tz.ZoneDetails {
		w.field(sb, "  "+d.Zone, fmt.Sprintf("%s (%s)", d.LocalTime, d.Abbreviation))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeService(sb *strings.Builder, report *model.Report) {
	w.section(sb, "SERVICE INFO")
	s := report.Service
	w.field(sb, "Carrier", s.Carrier)
	w.field(sb, "Carrier Available", boolText(s.CarrierAvailable))
	w.field(sb, "Number Type", s.NumberType)
	w.field(sb, "Mobile", boolText(s.IsMobile))
	w.field(sb, "Fixed Line", boolText(s.IsFixedLine))
	w.field(sb, "VoIP", boolText(s.IsVoIP))
	w.field(sb, "Toll Free", boolText(s.IsTollFree))
	w.field(sb, "Premium Rate", boolText(s.IsPremiumRate))
	w.field(sb, "Special Service", boolText(s.IsSpecialService))
	w.field(sb, "Likely Billable", boolText(s.LikelyBillable))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeTechnical(sb *strings.Builder, report *model.Report) {
	w.section(sb, "TECHNICAL DATA")
	t := report.Technical
	w.field(sb, "National Dialing Prefix", t.NationalDialingPrefix)
	w.field(sb, "Country Calling Code", t.CountryCallingCode)
	w.field(sb, "NANPA Region", boolText(t.IsNANPA))
	w.field(sb, "Geo Area Code Length", strconv.Itoa(t.GeoAreaCodeLength))
	w.field(sb, "Destination Code Length", strconv.Itoa(t.DestinationCodeLength))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeExamples(sb *strings.Builder, report *model.Report) {
	if len(report.Examples) == 0 {
		return
	}

	w.section(sb, "EXAMPLE NUMBERS")
	for _, ex := range report.Examples {
		w.field(sb, ex.Type, fmt.Sprintf("%s / %s", ex.National, ex.International))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeAnalysis(sb *strings.Builder, report *model.Report) {
	w.section(sb, "ANALYSIS")
	a := report.Analysis
	w.field(sb, "Data Sources", strings.Join(a.DataSources, ", "))
	w.field(sb, "Data Points", strconv.Itoa(a.DataPoints))
	w.field(sb, "Confidence Score", strconv.Itoa(a.ConfidenceScore)+"%")
	w.field(sb, "Risk Level", a.Risk.LevelText)
	for _, factor := range a.Risk.Factors {
		w.field(sb, "  Risk Factor", factor)
	}
	w.field(sb, "Safe To Call", boolText(a.Risk.SafeToCall))
	sb.WriteString("\n")
}

// writeSummaryFooter writes the quick summary block.
func (w *SimpleWriter) writeSummaryFooter(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("QUICK SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	w.field(sb, "Number", summary.E164)
	w.field(sb, "Valid", boolText(summary.IsValid))
	w.field(sb, "Location", summary.Location)
	w.field(sb, "Country", summary.Country)
	w.field(sb, "Carrier", summary.Carrier)
	w.field(sb, "Type", summary.NumberType)
	w.field(sb, "Confidence", strconv.Itoa(summary.ConfidenceScore)+"%")
	w.field(sb, "Risk Level", summary.RiskLevel)
	for _, factor := range summary.RiskFactors {
		fmt.Fprintf(sb, "    * %s\n", factor)
	}
	if summary.Error != "" {
		w.field(sb, "Error", summary.Error)
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// sortedKeys returns the map keys in sorted order for stable output.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
