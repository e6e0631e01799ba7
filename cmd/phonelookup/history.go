package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/razberi-py/phone-number-lookup/internal/config"
	"github.com/razberi-py/phone-number-lookup/internal/database"
	"github.com/razberi-py/phone-number-lookup/internal/lookup"
	"github.com/razberi-py/phone-number-lookup/internal/report"
)

// Constants for change direction in history comparison.
const (
	changeDirectionWorsened  = "worsened"
	changeDirectionImproved  = "improved"
	changeDirectionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command inspects past lookups stored in the database and compares
// the two most recent results for a number.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [phone-number]",
		Short: "Inspect and compare past lookups",
		Long: `History retrieves past lookup results from the database.

Without flags, it compares the two most recent lookups of the given number
and shows what changed: validity, risk level, confidence score, carrier,
and location. Offline metadata updates over time, so repeated lookups of
the same number can produce different results.

Examples:
  # Compare the latest two lookups of a number
  phonelookup history +442079460958

  # List all lookups recorded for a number
  phonelookup history --list +442079460958

  # Use a national-format spelling of a recorded number
  phonelookup history --region GB "020 7946 0958"

  # Compare the latest lookup with a specific record by ID
  phonelookup history --with-id 5 +442079460958

  # Re-print a stored report by ID
  phonelookup history --show-id 5 +442079460958

  # Output the comparison in JSON format
  phonelookup history --json +442079460958

  # List all numbers in the database
  phonelookup history --list-numbers`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// Parsing flags
	cmd.Flags().StringP("region", "r", config.DefaultRegion,
		"Default region for numbers without a country code (ISO 3166-1 alpha-2)")

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List lookup history for the specified number")
	cmd.Flags().BoolP("list-numbers", "L", false,
		"List all numbers in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare with a specific lookup by ID (use --list to see available IDs)")
	cmd.Flags().Int64P("show-id", "s", 0,
		"Re-print the stored report for a specific lookup ID")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-numbers flag first (requires database but no number)
	listNumbers, err := cmd.Flags().GetBool("list-numbers")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-numbers).
	// This prevents database lock issues when validation fails.
	var e164 string
	if !listNumbers {
		if len(args) == 0 {
			return errors.New("phone number is required (use --list-numbers to see recorded numbers)")
		}

		region, err := cmd.Flags().GetString("region")
		if err != nil {
			return err
		}

		e164, err = historyKey(args[0], region)
		if err != nil {
			return err
		}
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	// Open database
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-numbers flag
	if listNumbers {
		return listRecordedNumbers(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listLookupHistory(ctx, db, e164)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Handle --show-id flag
	showID, err := cmd.Flags().GetInt64("show-id")
	if err != nil {
		return err
	}
	if showID > 0 {
		return showStoredReport(ctx, db, e164, showID, jsonOutput)
	}

	// Get comparison target flag
	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}

	// Perform comparison
	return runComparison(ctx, db, e164, withID, jsonOutput)
}

// historyKey normalizes user input to the E.164 form history records are
// keyed by, so any accepted spelling of a number matches its records. The
// region is the parsing fallback for national-format input.
func historyKey(raw, region string) (string, error) {
	num, err := lookup.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("invalid phone number: %w", err)
	}
	return lookup.E164(num), nil
}

// showStoredReport re-prints the stored report for a specific lookup ID.
func showStoredReport(ctx context.Context, db *database.HistoryDB, e164 string, id int64, jsonOutput bool) error {
	record, err := db.GetLookup(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get lookup with ID %d: %w", id, err)
	}
	if record.E164 != e164 {
		return fmt.Errorf("lookup ID %d belongs to %s, not %s", id, record.E164, e164)
	}

	if jsonOutput {
		writer := report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
		_, err := writer.Write(record.Report)
		return err
	}

	fmt.Printf("Stored report from %s (ID %d):\n\n",
		record.Timestamp.Format("2006-01-02 15:04:05"), record.ID)
	writer := report.NewSimpleWriter(os.Stdout)
	_, err = writer.Write(record.Report)
	return err
}

// listRecordedNumbers lists all numbers that have lookup records.
func listRecordedNumbers(ctx context.Context, db *database.HistoryDB) error {
	numbers, err := db.ListNumbers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list numbers: %w", err)
	}

	if len(numbers) == 0 {
		fmt.Println("No lookups found in the database.")
		fmt.Println("\nUse 'phonelookup lookup <number>' to analyze a number.")
		return nil
	}

	sorted := make([]string, 0, len(numbers))
	for e164 := range numbers {
		sorted = append(sorted, e164)
	}
	sort.Strings(sorted)

	fmt.Printf("Recorded numbers (%d):\n\n", len(sorted))
	for _, e164 := range sorted {
		fmt.Printf("  %-20s  %d lookups\n", e164, numbers[e164])
	}
	fmt.Println("\nUse 'phonelookup history --list <number>' to see lookup history for a number.")

	return nil
}

// listLookupHistory lists all lookup records for a specific number.
func listLookupHistory(ctx context.Context, db *database.HistoryDB, e164 string) error {
	records, err := db.ListLookups(ctx, e164, 0)
	if err != nil {
		return fmt.Errorf("failed to get lookup history: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No lookup history found for %s\n", e164)
		fmt.Println("\nUse 'phonelookup lookup' to analyze this number.")
		return nil
	}

	fmt.Printf("Lookup history for %s (%d lookups):\n\n", e164, len(records))
	fmt.Printf("  %-6s  %-20s  %-8s  %-6s  %s\n", "ID", "Date", "Valid", "Risk", "Confidence")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, record := range records {
		fmt.Printf("  %-6d  %-20s  %-8s  %-6s  %d/100\n",
			record.ID,
			record.Timestamp.Format("2006-01-02 15:04:05"),
			boolYesNo(record.IsValid),
			record.RiskLevel,
			record.Confidence,
		)
	}

	fmt.Println("\nUse 'phonelookup history <number>' to compare the latest two lookups.")
	fmt.Println("Use 'phonelookup history --with-id <id> <number>' to compare with a specific lookup.")

	return nil
}

// boolYesNo renders a bool as "yes" or "no".
func boolYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// runComparison performs the actual comparison between lookup records.
func runComparison(ctx context.Context, db *database.HistoryDB, e164 string, withID int64, jsonOutput bool) error {
	var current, previous *database.LookupRecord
	var err error

	if withID > 0 {
		// Compare the most recent lookup with the specified record
		records, err := db.ListLookups(ctx, e164, 1)
		if err != nil {
			return fmt.Errorf("failed to get lookup history: %w", err)
		}
		if len(records) == 0 {
			return fmt.Errorf("no lookup history found for %s", e164)
		}
		current = records[0]

		previous, err = db.GetLookup(ctx, withID)
		if err != nil {
			return fmt.Errorf("failed to get lookup with ID %d: %w", withID, err)
		}
		// Validate that the record belongs to the same number
		if previous.E164 != e164 {
			return fmt.Errorf("lookup ID %d belongs to %s, not %s", withID, previous.E164, e164)
		}
	} else {
		current, previous, err = db.LatestTwo(ctx, e164)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("at least 2 lookups of %s are required for comparison: %w", e164, err)
			}
			return err
		}
	}

	comparison := compareRecords(previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two lookup records.
type ComparisonResult struct {
	// Number is the E.164 form of the compared number.
	Number string `json:"number"`

	// PreviousLookup contains metadata about the previous lookup.
	PreviousLookup LookupMetadata `json:"previous_lookup"`

	// CurrentLookup contains metadata about the current lookup.
	CurrentLookup LookupMetadata `json:"current_lookup"`

	// Changes lists the fields whose values differ between the lookups.
	Changes []FieldChange `json:"changes,omitempty"`

	// ConfidenceDelta is the change in confidence score.
	ConfidenceDelta int `json:"confidence_delta"`

	// Direction is "improved", "worsened", or "unchanged", judged by risk
	// level first and confidence score second.
	Direction string `json:"direction"`
}

// LookupMetadata contains metadata about a lookup for comparison display.
type LookupMetadata struct {
	// ID is the database record ID.
	ID int64 `json:"id"`

	// DateAnalyzed is when the lookup was performed.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// IsValid reports whether the number validated.
	IsValid bool `json:"is_valid"`

	// RiskLevel is the heuristic risk level text.
	RiskLevel string `json:"risk_level"`

	// Confidence is the 0-100 confidence score.
	Confidence int `json:"confidence"`

	// Carrier is the resolved carrier name.
	Carrier string `json:"carrier"`

	// Location is the resolved primary location.
	Location string `json:"location"`

	// NumberType is the resolved number type.
	NumberType string `json:"number_type"`
}

// FieldChange records one field whose value changed between lookups.
type FieldChange struct {
	// Field is the display name of the changed field.
	Field string `json:"field"`

	// Previous is the previous value.
	Previous string `json:"previous"`

	// Current is the current value.
	Current string `json:"current"`
}

// compareRecords compares two lookup records and generates a comparison result.
func compareRecords(previous, current *database.LookupRecord) *ComparisonResult {
	result := &ComparisonResult{
		Number:         current.E164,
		PreviousLookup: recordMetadata(previous),
		CurrentLookup:  recordMetadata(current),
	}

	result.ConfidenceDelta = result.CurrentLookup.Confidence - result.PreviousLookup.Confidence

	pairs := []struct {
		field    string
		previous string
		current  string
	}{
		{"Validity", boolYesNo(result.PreviousLookup.IsValid), boolYesNo(result.CurrentLookup.IsValid)},
		{"Risk level", result.PreviousLookup.RiskLevel, result.CurrentLookup.RiskLevel},
		{"Confidence", strconv.Itoa(result.PreviousLookup.Confidence), strconv.Itoa(result.CurrentLookup.Confidence)},
		{"Carrier", result.PreviousLookup.Carrier, result.CurrentLookup.Carrier},
		{"Location", result.PreviousLookup.Location, result.CurrentLookup.Location},
		{"Number type", result.PreviousLookup.NumberType, result.CurrentLookup.NumberType},
	}
	for _, p := range pairs {
		if p.previous != p.current {
			result.Changes = append(result.Changes, FieldChange{
				Field:    p.field,
				Previous: p.previous,
				Current:  p.current,
			})
		}
	}

	result.Direction = judgeDirection(result)

	return result
}

// recordMetadata extracts display metadata from a lookup record.
func recordMetadata(record *database.LookupRecord) LookupMetadata {
	meta := LookupMetadata{
		ID:           record.ID,
		DateAnalyzed: record.Timestamp,
		IsValid:      record.IsValid,
		RiskLevel:    record.RiskLevel,
		Confidence:   record.Confidence,
	}
	if record.Report != nil {
		meta.Carrier = record.Report.Service.Carrier
		meta.Location = record.Report.Geographic.PrimaryLocation
		meta.NumberType = record.Report.Service.NumberType
	}
	return meta
}

// judgeDirection judges the overall change: risk level first, then
// confidence score.
func judgeDirection(result *ComparisonResult) string {
	prevRisk := riskRank(result.PreviousLookup.RiskLevel)
	currRisk := riskRank(result.CurrentLookup.RiskLevel)

	switch {
	case currRisk > prevRisk:
		return changeDirectionWorsened
	case currRisk < prevRisk:
		return changeDirectionImproved
	case result.ConfidenceDelta > 0:
		return changeDirectionImproved
	case result.ConfidenceDelta < 0:
		return changeDirectionWorsened
	default:
		return changeDirectionUnchanged
	}
}

// riskRank maps a risk level text to an ordinal for comparison.
func riskRank(level string) int {
	switch level {
	case "HIGH":
		return 2
	case "MEDIUM":
		return 1
	default:
		return 0
	}
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Lookup Comparison: %s\n", result.Number)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStatus: %s\n", formatChangeDirection(result.Direction))

	fmt.Printf("\nPrevious lookup: %s (ID %d)\n",
		result.PreviousLookup.DateAnalyzed.Format("2006-01-02 15:04:05"), result.PreviousLookup.ID)
	fmt.Printf("Current lookup:  %s (ID %d)\n",
		result.CurrentLookup.DateAnalyzed.Format("2006-01-02 15:04:05"), result.CurrentLookup.ID)

	if len(result.Changes) == 0 {
		fmt.Println("\nNo differences between the two lookups.")
		return nil
	}

	fmt.Printf("\nChanges (%d):\n", len(result.Changes))
	fmt.Printf("  %-14s  %-20s  %-20s\n", "Field", "Previous", "Current")
	fmt.Println("  " + strings.Repeat("-", 56))
	for _, change := range result.Changes {
		fmt.Printf("  %-14s  %-20s  %-20s\n", change.Field, change.Previous, change.Current)
	}

	fmt.Printf("\nConfidence change: %s\n", formatDelta(result.ConfidenceDelta))

	return nil
}

// formatChangeDirection formats the change direction for display.
func formatChangeDirection(direction string) string {
	switch direction {
	case changeDirectionImproved:
		return "IMPROVED (risk decreased or confidence increased)"
	case changeDirectionWorsened:
		return "WORSENED (risk increased or confidence decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
