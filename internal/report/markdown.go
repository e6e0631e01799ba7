package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeFormats(md, report)
	w.writeValidation(md, report)
	w.writeStructure(md, report)
	w.writeGeographic(md, report)
	w.writeTimezone(md, report)
	w.writeService(md, report)
	w.writeTechnical(md, report)
	w.writeExamples(md, report)
	w.writeAnalysis(md, report)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the condensed summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Phone Number Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Number", "`" + summary.E164 + "`"},
			{"Valid", boolText(summary.IsValid)},
			{"Location", summary.Location},
			{"Country", summary.Country},
			{"Carrier", summary.Carrier},
			{"Type", summary.NumberType},
			{"Confidence", strconv.Itoa(summary.ConfidenceScore) + "%"},
			{"Risk Level", summary.RiskLevel},
		},
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with input information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Phone Number Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input", "`" + report.Input + "`"},
			{"Default Region", report.DefaultRegion},
			{"E.164", "`" + report.Formats.E164 + "`"},
			{"Result", report.Validation.Result},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert writes an alert matching the risk assessment.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	risk := report.Analysis.Risk
	switch risk.Level {
	case model.RiskHigh:
		md.Warningf("High risk number: %s.", strings.Join(risk.Factors, "; "))
	case model.RiskMedium:
		md.Importantf("Caution advised: %s.", strings.Join(risk.Factors, "; "))
	default:
		if report.Validation.IsValid {
			md.Tip("Number validated with no concerning attributes.")
		} else {
			md.Note("Number did not validate against its numbering plan.")
		}
	}
	md.PlainText("")
}

// propertyTable writes a two-column section table.
func (w *MarkdownWriter) propertyTable(md *markdown.Markdown, title string, rows [][]string) {
	md.H2(title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFormats(md *markdown.Markdown, report *model.Report) {
	f := report.Formats
	w.propertyTable(md, "Number Formats", [][]string{
		{"E.164", "`" + f.E164 + "`"},
		{"International", f.International},
		{"National", f.National},
		{"RFC 3966", "`" + f.RFC3966 + "`"},
		{"Cleaned Input", "`" + f.CleanedInput + "`"},
	})
}

func (w *MarkdownWriter) writeValidation(md *markdown.Markdown, report *model.Report) {
	v := report.Validation
	w.propertyTable(md, "Validation", [][]string{
		{"Valid", boolText(v.IsValid)},
		{"Possible", boolText(v.IsPossible)},
		{"Valid For Region", boolText(v.IsValidForRegion)},
		{"Result", v.Result},
		{"Possible Reason", v.PossibleReason},
	})
}

func (w *MarkdownWriter) writeStructure(md *markdown.Markdown, report *model.Report) {
	s := report.Structure
	w.propertyTable(md, "Structure", [][]string{
		{"Country Code", strconv.Itoa(s.CountryCode)},
		{"National Number", s.NationalNumber},
		{"National Number Length", strconv.Itoa(s.NationalNumberLength)},
		{"Total Digits", strconv.Itoa(s.TotalDigits)},
		{"Extension", s.Extension},
		{"Italian Leading Zero", boolText(s.ItalianLeadingZero)},
	})
}

func (w *MarkdownWriter) writeGeographic(md *markdown.Markdown, report *model.Report) {
	g := report.Geographic
	rows := [][]string{
		{"Region Code", g.RegionCode},
		{"Country", g.CountryName},
		{"Country Alpha-3", g.CountryAlpha3},
		{"Country Numeric", g.CountryNumeric},
		{"Capital", g.Capital},
		{"Continent", g.Continent},
		{"Associated Regions", strings.Join(g.AssociatedRegions, ", ")},
		{"Primary Location", g.PrimaryLocation},
		{"City", g.City},
		{"State/Province", g.StateProvince},
		{"Location Confidence", g.LocationConfidence},
		{"Area Code", g.AreaCode},
		{"Exchange Code", g.ExchangeCode},
		{"Subscriber Number", g.SubscriberNumber},
		{"NANP Format", boolText(g.NANPFormat)},
	}

	langs := make([]string, 0, len(g.AlternateLocations))
	for lang := range g.AlternateLocations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		rows = append(rows, []string{"Location (" + lang + ")", g.AlternateLocations[lang]})
	}

	w.propertyTable(md, "Geographic Info", rows)
}

func (w *MarkdownWriter) writeTimezone(md *markdown.Markdown, report *model.Report) {
	tz := report.Timezone
	rows := [][]string{
		{"Timezones", strings.Join(tz.Zones, ", ")},
		{"Primary Timezone", tz.Primary},
		{"Local Time", tz.LocalTime},
		{"Local Date", tz.LocalDate},
		{"UTC Offset", tz.UTCOffset},
		{"DST Active", boolText(tz.IsDST)},
		{"Abbreviation", tz.Abbreviation},
	}
	for _, d := range tz.ZoneDetails {
		rows = append(rows, []string{d.Zone, fmt.Sprintf("%s (%s)", d.LocalTime, d.Abbreviation)})
	}
	w.propertyTable(md, "Timezone Info", rows)
}

func (w *MarkdownWriter) writeService(md *markdown.Markdown, report *model.Report) {
	s := report.Service
	w.propertyTable(md, "Service Info", [][]string{
		{"Carrier", s.Carrier},
		{"Number Type", s.NumberType},
		{"Mobile", boolText(s.IsMobile)},
		{"VoIP", boolText(s.IsVoIP)},
		{"Toll Free", boolText(s.IsTollFree)},
		{"Premium Rate", boolText(s.IsPremiumRate)},
		{"Likely Billable", boolText(s.LikelyBillable)},
	})
}

func (w *MarkdownWriter) writeTechnical(md *markdown.Markdown, report *model.Report) {
	t := report.Technical
	w.propertyTable(md, "Technical Data", [][]string{
		{"National Dialing Prefix", t.NationalDialingPrefix},
		{"Country Calling Code", t.CountryCallingCode},
		{"NANPA Region", boolText(t.IsNANPA)},
		{"Geo Area Code Length", strconv.Itoa(t.GeoAreaCodeLength)},
		{"Destination Code Length", strconv.Itoa(t.DestinationCodeLength)},
	})
}

func (w *MarkdownWriter) writeExamples(md *markdown.Markdown, report *model.Report) {
	if len(report.Examples) == 0 {
		return
	}

	md.H2("Example Numbers")
	md.PlainText("")

	rows := make([][]string, len(report.Examples))
	for i, ex := range report.Examples {
		rows[i] = []string{ex.Type, ex.National, ex.International}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Type", "National", "International"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeAnalysis(md *markdown.Markdown, report *model.Report) {
	a := report.Analysis
	rows := [][]string{
		{"Data Sources", strings.Join(a.DataSources, ", ")},
		{"Data Points", strconv.Itoa(a.DataPoints)},
		{"Confidence Score", strconv.Itoa(a.ConfidenceScore) + "%"},
		{"Risk Level", a.Risk.LevelText},
		{"Safe To Call", boolText(a.Risk.SafeToCall)},
	}
	for _, factor := range a.Risk.Factors {
		rows = append(rows, []string{"Risk Factor", factor})
	}
	w.propertyTable(md, "Analysis", rows)
}
