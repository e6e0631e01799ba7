package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// ErrNotFound is returned when a requested history record does not exist.
var ErrNotFound = errors.New("history record not found")

// HistoryDB provides SQLite-based storage for lookup history.
// It manages connection pooling and provides methods for CRUD operations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "phonelookup.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Lookup records store one analyzed number per row with the full
	-- report as JSON and a few indexed summary columns for listing.
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		e164 TEXT NOT NULL,
		region_code TEXT,
		is_valid INTEGER NOT NULL DEFAULT 0,
		risk_level TEXT,
		confidence INTEGER NOT NULL DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_e164 ON lookups(e164);
	CREATE INDEX IF NOT EXISTS idx_lookups_timestamp ON lookups(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// LookupRecord represents a stored lookup result.
type LookupRecord struct {
	ID         int64
	Input      string
	E164       string
	RegionCode string
	IsValid    bool
	RiskLevel  string
	Confidence int
	Timestamp  time.Time
	Report     *model.Report
}

// SaveReport inserts a completed report as a new history record.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO lookups (input, e164, region_code, is_valid, risk_level, confidence, timestamp, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.Input,
		report.Formats.E164,
		report.Geographic.RegionCode,
		report.Validation.IsValid,
		report.Analysis.Risk.LevelText,
		report.Analysis.ConfidenceScore,
		report.DateAnalyzed.UTC(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert lookup record: %w", err)
	}

	return result.LastInsertId()
}

// GetLookup retrieves a single history record by ID.
// Returns ErrNotFound if no record with the given ID exists.
func (hdb *HistoryDB) GetLookup(ctx context.Context, id int64) (*LookupRecord, error) {
	query := `
	SELECT id, input, e164, region_code, is_valid, risk_level, confidence, timestamp, report_json
	FROM lookups WHERE id = ?
	`

	record, err := hdb.scanRecord(hdb.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return record, nil
}

// ListLookups returns the most recent history records for an E.164 number,
// newest first. If e164 is empty, records for all numbers are returned.
func (hdb *HistoryDB) ListLookups(ctx context.Context, e164 string, limit int) ([]*LookupRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, input, e164, region_code, is_valid, risk_level, confidence, timestamp, report_json
	FROM lookups
	`
	args := []any{}
	if e164 != "" {
		query += " WHERE e164 = ?"
		args = append(args, e164)
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup records: %w", err)
	}
	defer rows.Close()

	var records []*LookupRecord
	for rows.Next() {
		record, err := hdb.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// LatestTwo returns the two most recent records for an E.164 number,
// newest first. Returns ErrNotFound when fewer than two records exist.
func (hdb *HistoryDB) LatestTwo(ctx context.Context, e164 string) (latest, previous *LookupRecord, err error) {
	records, err := hdb.ListLookups(ctx, e164, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: need two lookups of %s for comparison, have %d", ErrNotFound, e164, len(records))
	}
	return records[0], records[1], nil
}

// ListNumbers returns the distinct E.164 numbers in the history with their
// lookup counts. The map carries no ordering; callers sort for display.
func (hdb *HistoryDB) ListNumbers(ctx context.Context) (map[string]int, error) {
	query := `
	SELECT e164, COUNT(*) FROM lookups GROUP BY e164
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query numbers: %w", err)
	}
	defer rows.Close()

	numbers := make(map[string]int)
	for rows.Next() {
		var e164 string
		var count int
		if err := rows.Scan(&e164, &count); err != nil {
			return nil, err
		}
		numbers[e164] = count
	}
	return numbers, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRecord.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one lookup row, deserializing the stored report.
func (hdb *HistoryDB) scanRecord(row rowScanner) (*LookupRecord, error) {
	var record LookupRecord
	var reportJSON string

	err := row.Scan(
		&record.ID,
		&record.Input,
		&record.E164,
		&record.RegionCode,
		&record.IsValid,
		&record.RiskLevel,
		&record.Confidence,
		&record.Timestamp,
		&reportJSON,
	)
	if err != nil {
		return nil, err
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	record.Report = &report
	record.Report.DateAnalyzed = record.Timestamp

	return &record, nil
}
