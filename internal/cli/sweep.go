package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sdejongh/conflictsweep/internal/platform"
	"github.com/sdejongh/conflictsweep/pkg/config"
	"github.com/sdejongh/conflictsweep/pkg/logging"
	"github.com/sdejongh/conflictsweep/pkg/match"
	"github.com/sdejongh/conflictsweep/pkg/output"
	"github.com/sdejongh/conflictsweep/pkg/reconcile"
	"github.com/sdejongh/conflictsweep/pkg/storage"
)

// SweepFlags holds the sweep flags of the root command
type SweepFlags struct {
	Root          string
	Devices       string
	DryRun        bool
	Identify      bool
	RemoveOrphans bool
	MaxDepth      int
	Exclude       []string
	Output        string
	Report        string
	ReportFormat  string
	Progress      bool
	// Logging flags
	LogFile   string
	LogFormat string
}

var sweepFlags SweepFlags

// AddSweepFlags registers the sweep flags on the root command
func AddSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sweepFlags.Root, "root", "", "sync directory to sweep (default: $CONFLICTSWEEP_ROOT, config, then $OneDrive)")
	cmd.Flags().StringVar(&sweepFlags.Devices, "devices", "", "comma separated device identifiers, e.g. \"DESKTOP1,LAPTOP2\"")
	cmd.Flags().BoolVarP(&sweepFlags.DryRun, "dry-run", "d", false, "display results only, don't move or delete files")
	cmd.Flags().BoolVarP(&sweepFlags.Identify, "identify", "i", false, "identify device names from conflicting files, never modify")
	cmd.Flags().BoolVarP(&sweepFlags.RemoveOrphans, "orphans", "o", false, "delete conflict files that have no original")
	cmd.Flags().IntVar(&sweepFlags.MaxDepth, "max-depth", 0, "maximum directory depth (default: 256)")
	cmd.Flags().StringSliceVar(&sweepFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVar(&sweepFlags.Output, "output", "", "output format: log, json")
	cmd.Flags().StringVar(&sweepFlags.Report, "report", "", "write the run report to file")
	cmd.Flags().StringVar(&sweepFlags.ReportFormat, "report-format", "human", "report format: human, json")
	cmd.Flags().BoolVar(&sweepFlags.Progress, "progress", false, "show a live directory counter on stderr")

	// Logging flags
	cmd.Flags().StringVar(&sweepFlags.LogFile, "log-file", "", "also write logs to file")
	cmd.Flags().StringVar(&sweepFlags.LogFormat, "log-format", "", "log file format: text, json")
}

// RunSweep runs a conflict sweep with the parsed flags
func RunSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateSweepFlags(); err != nil {
		return err
	}

	root, err := config.ResolveRoot(sweepFlags.Root, cfg)
	if err != nil {
		return err
	}
	root, err = platform.SyncRoot(root)
	if err != nil {
		return err
	}

	operation, err := createRunOperation(cfg, root, config.ResolveDevices(sweepFlags.Devices, cfg))
	if err != nil {
		return fmt.Errorf("failed to create run operation: %w", err)
	}

	// JSON output owns stdout, so the log stream moves to stderr
	var logStream io.Writer = os.Stdout
	if cfg.Output.Format == "json" {
		logStream = os.Stderr
	}
	logger, err := createLogger(cfg, logStream)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend, err := storage.NewLocal(operation.RootPath)
	if err != nil {
		return fmt.Errorf("failed to open sync directory: %w", err)
	}
	defer backend.Close()

	var matcher *match.Matcher
	if operation.Identify {
		matcher = match.NewIdentifyMatcher()
	} else {
		matcher, err = match.NewMatcher(operation.Devices)
		if err != nil {
			return fmt.Errorf("invalid device list: %w", err)
		}
	}

	formatter := createFormatter(cfg)

	engine := reconcile.NewEngine(backend, matcher, formatter, logger, operation)
	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	if sweepFlags.Report != "" {
		if err := output.WriteReport(report, sweepFlags.Report, sweepFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	// Errors met during the walk are logged; only cancellation changes the exit code
	if code := report.Status.ExitCode(); code != 0 {
		logger.Close()
		os.Exit(code)
	}
	return nil
}

// createFormatter combines the live progress counter and the JSON report
func createFormatter(cfg *config.Config) output.Formatter {
	var progress, report output.Formatter
	if cfg.Output.Progress {
		progress = output.NewProgressFormatter()
	}
	if cfg.Output.Format == "json" {
		report = output.NewJSONFormatter()
	}
	return output.NewMultiFormatter(progress, report)
}

// createLogger creates the console logger, teed to a log file when configured
func createLogger(cfg *config.Config, stream io.Writer) (logging.Logger, error) {
	level := logging.Level(cfg.Logging.Verbosity)
	console := logging.NewConsoleLogger(stream, level)

	if cfg.Logging.File == "" {
		return console, nil
	}

	file, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     logging.ParseFormat(cfg.Logging.Format),
		Level:      level,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	return logging.NewMultiLogger(console, file), nil
}
