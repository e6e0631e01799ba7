package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*HistoryDB, func()) {
	t.Helper()

	tmpDir := t.TempDir()

	db, err := Open(tmpDir, DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return db, cleanup
}

// testReport builds a minimal completed report for storage tests.
func testReport(input, e164, region string) *model.Report {
	report := model.NewReport(input)
	report.DefaultRegion = "US"
	report.Formats.Input = input
	report.Formats.E164 = e164
	report.Validation.IsValid = true
	report.Validation.Result = "VALID"
	report.Geographic.RegionCode = region
	report.Analysis.ConfidenceScore = 75
	report.Analysis.Risk.LevelText = "LOW"
	report.Analysis.Risk.SafeToCall = true
	return report
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		dbDir := filepath.Join(tmpDir, "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// Check that database file exists
		dbPath := filepath.Join(dbDir, "phonelookup.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "nonexistent-db")

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected error to mention missing database, got %q", err.Error())
		}

		// Verify database directory was NOT created
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "existing-db")

		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}

		ctx := context.Background()
		if _, err := db1.SaveReport(ctx, testReport("+442079460958", "+442079460958", "GB")); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		db1.Close()

		openOpts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}
		db2, err := Open(dbDir, openOpts)
		if err != nil {
			t.Fatalf("failed to open existing database with CreateIfNotExists=false: %v", err)
		}
		defer db2.Close()

		// Verify data persists
		records, err := db2.ListLookups(ctx, "+442079460958", 10)
		if err != nil {
			t.Fatalf("failed to list lookups: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("expected 1 record after reopen, got %d", len(records))
		}
	})
}

// TestDefaultOptions tests the default options values.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true by default")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true by default")
	}
}

// TestSaveAndGetLookup tests report storage and retrieval by ID.
func TestSaveAndGetLookup(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("save and retrieve report", func(t *testing.T) {
		report := testReport("+44 20 7946 0958", "+442079460958", "GB")
		report.Geographic.CountryName = "United Kingdom"

		id, err := db.SaveReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero ID")
		}

		record, err := db.GetLookup(ctx, id)
		if err != nil {
			t.Fatalf("failed to get lookup: %v", err)
		}

		if record.E164 != "+442079460958" {
			t.Errorf("expected E.164 '+442079460958', got %q", record.E164)
		}
		if record.RegionCode != "GB" {
			t.Errorf("expected region 'GB', got %q", record.RegionCode)
		}
		if !record.IsValid {
			t.Error("expected IsValid to be true")
		}
		if record.RiskLevel != "LOW" {
			t.Errorf("expected risk level 'LOW', got %q", record.RiskLevel)
		}
		if record.Report == nil {
			t.Fatal("expected deserialized report, got nil")
		}
		if record.Report.Geographic.CountryName != "United Kingdom" {
			t.Errorf("expected country 'United Kingdom', got %q", record.Report.Geographic.CountryName)
		}
	})

	t.Run("returns ErrNotFound for non-existent ID", func(t *testing.T) {
		_, err := db.GetLookup(ctx, 99999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

// TestListLookups tests history listing and filtering.
func TestListLookups(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Save reports for two numbers
	for i := range 3 {
		report := testReport("+442079460958", "+442079460958", "GB")
		report.Analysis.ConfidenceScore = 50 + i*10
		if _, err := db.SaveReport(ctx, report); err != nil {
			t.Fatalf("failed to save report %d: %v", i, err)
		}
		// Small delay to ensure different timestamps
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := db.SaveReport(ctx, testReport("+14155552671", "+14155552671", "US")); err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	t.Run("filters by e164 and orders newest first", func(t *testing.T) {
		records, err := db.ListLookups(ctx, "+442079460958", 10)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if records[0].Confidence != 70 {
			t.Errorf("expected newest record first (confidence 70), got %d", records[0].Confidence)
		}
	})

	t.Run("empty e164 lists all numbers", func(t *testing.T) {
		records, err := db.ListLookups(ctx, "", 10)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(records) != 4 {
			t.Errorf("expected 4 records, got %d", len(records))
		}
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		records, err := db.ListLookups(ctx, "+442079460958", 2)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("returns empty list for unknown number", func(t *testing.T) {
		records, err := db.ListLookups(ctx, "+818012345678", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty list, got %d records", len(records))
		}
	})
}

// TestLatestTwo tests retrieval of the two most recent lookups.
func TestLatestTwo(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("returns ErrNotFound with fewer than two lookups", func(t *testing.T) {
		if _, err := db.SaveReport(ctx, testReport("+14155552671", "+14155552671", "US")); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		_, _, err := db.LatestTwo(ctx, "+14155552671")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("returns newest then previous", func(t *testing.T) {
		first := testReport("+442079460958", "+442079460958", "GB")
		first.Analysis.ConfidenceScore = 50
		if _, err := db.SaveReport(ctx, first); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		second := testReport("+442079460958", "+442079460958", "GB")
		second.Analysis.ConfidenceScore = 80
		if _, err := db.SaveReport(ctx, second); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		latest, previous, err := db.LatestTwo(ctx, "+442079460958")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if latest.Confidence != 80 {
			t.Errorf("expected latest confidence 80, got %d", latest.Confidence)
		}
		if previous.Confidence != 50 {
			t.Errorf("expected previous confidence 50, got %d", previous.Confidence)
		}
	})
}

// TestListNumbers tests the distinct-number listing.
func TestListNumbers(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for _, e164 := range []string{"+442079460958", "+442079460958", "+14155552671"} {
		if _, err := db.SaveReport(ctx, testReport(e164, e164, "GB")); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
	}

	numbers, err := db.ListNumbers(ctx)
	if err != nil {
		t.Fatalf("failed to list numbers: %v", err)
	}
	if len(numbers) != 2 {
		t.Fatalf("expected 2 distinct numbers, got %d", len(numbers))
	}
	if numbers["+442079460958"] != 2 {
		t.Errorf("expected 2 lookups of +442079460958, got %d", numbers["+442079460958"])
	}
	if numbers["+14155552671"] != 1 {
		t.Errorf("expected 1 lookup of +14155552671, got %d", numbers["+14155552671"])
	}
}
