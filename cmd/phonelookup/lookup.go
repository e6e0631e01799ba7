package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/razberi-py/phone-number-lookup/internal/config"
	"github.com/razberi-py/phone-number-lookup/internal/database"
	"github.com/razberi-py/phone-number-lookup/internal/log"
	"github.com/razberi-py/phone-number-lookup/internal/lookup"
	"github.com/razberi-py/phone-number-lookup/internal/model"
	"github.com/razberi-py/phone-number-lookup/internal/pipeline"
	"github.com/razberi-py/phone-number-lookup/internal/report"
)

// NewLookupCmd creates the lookup command.
func NewLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [phone-number...]",
		Short: "Analyze one or more phone numbers",
		Long: `Lookup parses phone numbers and reports everything the bundled offline
metadata knows about them:

- Standard formats (E.164, international, national, RFC 3966)
- Validity and possibility checks
- Structural breakdown (country code, national number, area code)
- Geography (country, location, associated regions)
- Timezones and local time
- Carrier and number type
- Dialing metadata and example numbers
- Derived confidence score and risk assessment

With no arguments, lookup enters an interactive prompt that reads one number
per line. Type "quit", "exit", or an empty line to leave.

Examples:
  # Analyze a single number
  phonelookup lookup +442079460958

  # Analyze several numbers concurrently
  phonelookup lookup +442079460958 +14155552671 +818012345678

  # Parse a national-format number with an explicit region
  phonelookup lookup --region GB "020 7946 0958"

  # Output JSON report
  phonelookup lookup --json +442079460958

  # Query the geocoder in additional languages
  phonelookup lookup --lang en --extra-langs es,fr +442079460958

  # Use a custom configuration file
  phonelookup lookup -c myconfig.yaml +442079460958

Configuration file (.phonelookup) example:
  defaults:
    region: GB
    language: en
  regions:
    JP:
      language: ja
      extraLanguages:
        - en`,
		Args: cobra.ArbitraryArgs,
		RunE: runLookupCmd,
	}

	// Parsing flags
	cmd.Flags().StringP("region", "r", config.DefaultRegion,
		"Default region for numbers without a country code (ISO 3166-1 alpha-2)")

	// Lookup behavior flags
	cmd.Flags().StringP("lang", "l", config.DefaultLanguage,
		"Language for geocoder and carrier descriptions (BCP 47 tag)")
	cmd.Flags().StringSlice("extra-langs", nil,
		"Additional geocoder languages to report as alternate locations")

	// Batch processing flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent lookups when analyzing multiple numbers")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .phonelookup in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record the lookup in the history database")

	return cmd
}

// runLookupCmd executes the lookup command.
func runLookupCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration. An empty number list is allowed here: it
	// switches the command into interactive mode.
	interactive := len(cfg.Numbers) == 0
	if err := cfg.Validate(); err != nil && !(interactive && errors.Is(err, config.ErrNoNumber)) {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with phone number masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runLookup(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.DefaultRegion, err = cmd.Flags().GetString("region")
	if err != nil {
		return nil, err
	}
	cfg.DefaultRegion = strings.ToUpper(cfg.DefaultRegion)

	cfg.Language, err = cmd.Flags().GetString("lang")
	if err != nil {
		return nil, err
	}

	cfg.ExtraLanguages, err = cmd.Flags().GetStringSlice("extra-langs")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load settings from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		applyFileDefaults(cmd, cfg)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.Overrides = &config.File{
			Regions: make(map[string]config.Settings),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Save history to the XDG data directory unless the config file set a
	// different location
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	// Get positional arguments (phone numbers)
	cfg.Numbers = args

	return cfg, nil
}

// applyFileDefaults applies config-file defaults for flags the user did not
// set explicitly. Explicit flags always win over the file.
func applyFileDefaults(cmd *cobra.Command, cfg *config.Config) {
	defaults := cfg.Overrides.Defaults

	if defaults.Region != "" && !cmd.Flags().Changed("region") {
		cfg.DefaultRegion = strings.ToUpper(defaults.Region)
	}
	if defaults.Language != "" && !cmd.Flags().Changed("lang") {
		cfg.Language = defaults.Language
	}
	if len(defaults.ExtraLanguages) > 0 && !cmd.Flags().Changed("extra-langs") {
		cfg.ExtraLanguages = defaults.ExtraLanguages
	}
	if defaults.BatchSize > 0 && !cmd.Flags().Changed("batch") {
		cfg.BatchSize = defaults.BatchSize
	}
	if defaults.NoSave {
		cfg.NoSave = true
	}
	if defaults.DBDir != "" {
		cfg.DBDir = defaults.DBDir
	}

	// Explicit language flags also win over per-region profiles.
	if cmd.Flags().Changed("lang") || cmd.Flags().Changed("extra-langs") {
		cfg.Overrides.Regions = nil
	}
}

// runLookup executes the lookup.
func runLookup(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting lookup",
		"count", len(cfg.Numbers),
		"region", cfg.DefaultRegion,
		"language", cfg.Language,
		"batchSize", cfg.BatchSize,
	)

	// Open database connection unless saving is disabled
	var db *database.HistoryDB
	if !cfg.NoSave {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Interactive mode when no numbers were given
	if len(cfg.Numbers) == 0 {
		return runInteractiveLookup(ctx, cmd, cfg, db, logger)
	}

	// Use batch processor for parallel lookups if multiple numbers
	if len(cfg.Numbers) > 1 && cfg.BatchSize > 1 {
		return runBatchLookup(ctx, cfg, db, logger)
	}

	// Single number or sequential lookup
	return runSequentialLookup(ctx, cfg, db, logger)
}

// createPipeline creates a lookup pipeline for one number. The geocoder and
// carrier languages come from the per-region profile when the configuration
// file carries one for the region the number resolves to.
func createPipeline(cfg *config.Config, logger *slog.Logger, number string) *pipeline.Pipeline {
	language, extraLanguages := regionLanguages(cfg, number)

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineDefaultRegion(cfg.DefaultRegion),
		pipeline.WithPipelineLanguage(language),
		pipeline.WithPipelineReferenceTime(time.Now()),
	}

	if len(extraLanguages) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineExtraLanguages(extraLanguages))
	}

	return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
}

// regionLanguages resolves the lookup languages for a number. When the
// configuration file has a profile for the region the number resolves to,
// the profile's language settings win over the file defaults; a number that
// does not parse keeps the configured languages and fails later in the
// pipeline with the proper error.
func regionLanguages(cfg *config.Config, number string) (string, []string) {
	language, extraLanguages := cfg.Language, cfg.ExtraLanguages
	if cfg.Overrides == nil || len(cfg.Overrides.Regions) == 0 {
		return language, extraLanguages
	}

	num, err := lookup.Parse(number, cfg.DefaultRegion)
	if err != nil {
		return language, extraLanguages
	}

	profile := cfg.Overrides.GetRegionSettings(lookup.Region(num))
	if profile.Language != "" {
		language = profile.Language
	}
	if len(profile.ExtraLanguages) > 0 {
		extraLanguages = profile.ExtraLanguages
	}
	return language, extraLanguages
}

// runSequentialLookup analyzes numbers one at a time. A failing number is
// reported and the remaining numbers are still processed; the command fails
// only when no input could be analyzed at all.
func runSequentialLookup(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	failed := 0
	for _, number := range cfg.Numbers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := analyzeOne(ctx, cfg, db, logger, number); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	if failed > 0 && failed == len(cfg.Numbers) {
		return fmt.Errorf("no input could be analyzed (%d of %d failed)", failed, len(cfg.Numbers))
	}
	return nil
}

// analyzeOne runs the full pipeline for a single number, outputs the report,
// and records it in the history database.
func analyzeOne(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger, number string) error {
	p := createPipeline(cfg, logger, number)
	lookupReport := model.NewReport(number)

	if err := p.Execute(ctx, lookupReport); err != nil {
		if errors.Is(err, lookup.ErrInvalidInput) {
			return fmt.Errorf("could not parse %q: %w", number, err)
		}
		return err
	}

	if err := outputReport(cfg, lookupReport); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	return saveLookupReport(ctx, db, lookupReport, logger)
}

// runBatchLookup analyzes multiple numbers concurrently using BatchProcessor.
func runBatchLookup(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Analyzing %d numbers (concurrency: %d)...\n\n",
		len(cfg.Numbers), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func(number string) *pipeline.Pipeline {
			return createPipeline(cfg, logger, number)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	failed := 0
	_, err := bp.ProcessBatchWithCallback(ctx, cfg.Numbers, func(lookupReport *model.Report, index int) {
		mu.Lock()
		defer mu.Unlock()

		if lookupReport.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "[%d/%d] Error: could not parse %q: %v\n",
				index+1, len(cfg.Numbers), lookupReport.Input, lookupReport.Error)
			return
		}

		if err := outputReport(cfg, lookupReport); err != nil {
			logger.Error("report failed", "input", lookupReport.Input, "error", err)
		}

		if err := saveLookupReport(ctx, db, lookupReport, logger); err != nil {
			logger.Error("failed to save lookup report", "input", lookupReport.Input, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	if err != nil {
		return err
	}
	if failed == len(cfg.Numbers) {
		return fmt.Errorf("no input could be analyzed (%d of %d failed)", failed, len(cfg.Numbers))
	}
	return nil
}

// runInteractiveLookup reads numbers from stdin one line at a time.
// An empty line, "quit", or "exit" terminates the loop. Unparsable input
// prints an error and prompts again.
func runInteractiveLookup(ctx context.Context, cmd *cobra.Command, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Enter phone numbers to analyze, one per line.")
	fmt.Fprintln(out, "An empty line, \"quit\", or \"exit\" ends the session.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(out, "phone> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "", "quit", "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		}

		if err := analyzeOne(ctx, cfg, db, logger, line); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// outputReport outputs the lookup report in the requested format.
func outputReport(cfg *config.Config, lookupReport *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with owner-only permissions.
		// Reports contain phone numbers, which are personal data.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (detailed report with all data)
	if cfg.JSONReport {
		writer := report.NewJSONWriter(output, report.WithPrettyPrint())
		_, err := writer.Write(lookupReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(lookupReport)
		return err
	}

	// Human-readable report (default). Write renders the quick summary
	// footer itself.
	writer := report.NewSimpleWriter(output)
	_, err := writer.Write(lookupReport)
	return err
}

// saveLookupReport saves the lookup report to the database if enabled.
// If db is nil, this function is a no-op.
func saveLookupReport(ctx context.Context, db *database.HistoryDB, lookupReport *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveReport(ctx, lookupReport)
	if err != nil {
		return fmt.Errorf("failed to save lookup report: %w", err)
	}

	logger.Info("lookup report saved to database", "id", id, "e164", lookupReport.Formats.E164)
	return nil
}
