package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/irsum/internal/analyzer"
	"github.com/yildizm/irsum/internal/common"
	"github.com/yildizm/irsum/internal/formatter"
	"github.com/yildizm/irsum/internal/logger"
	"github.com/yildizm/irsum/internal/parser"
	"github.com/yildizm/irsum/internal/ui"
)

var (
	analyzeOutputFile   string
	analyzeInteractive  bool
	analyzeBucketPolicy string
	analyzeRepeatFactor int
	analyzeGroupSize    int
	analyzeTimeout      time.Duration
)

// analyzeOptions holds the effective settings after flags override config
type analyzeOptions struct {
	format       string
	repeatFactor int
	bucketPolicy analyzer.BucketPolicy
	groupSize    int
	timeout      time.Duration
	maxFileSize  int64
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze an IR capture file",
		Long: `Analyze an infrared capture file and print a report.

Thresholds are derived from every raw button in the file. The report shows the
modulation (PWM or PDM), the averaged timings and the decoded bits of each raw
button. Parsed buttons are listed by name only.

Examples:
  irsum analyze tv.ir
  irsum analyze -o json tv.ir
  irsum analyze --bucket-policy strict --repeat-factor 8 tv.ir
  irsum analyze -i tv.ir`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVarP(&analyzeInteractive, "interactive", "i", false, "browse the results in the terminal UI")
	addAnalysisFlags(cmd)

	return cmd
}

// addAnalysisFlags registers the flags shared by analyze and watch
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	cmd.Flags().StringVar(&analyzeBucketPolicy, "bucket-policy", "", "empty bucket handling (zero, strict)")
	cmd.Flags().IntVar(&analyzeRepeatFactor, "repeat-factor", 0, "long space factor over the running average")
	cmd.Flags().IntVar(&analyzeGroupSize, "group-size", 0, "bits per reported group")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "analysis timeout (0 disables)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts, err := resolveAnalyzeOptions(cmd)
	if err != nil {
		return err
	}

	log := newLogger("cli")
	path := args[0]

	file, err := readCapture(path, opts.maxFileSize, log)
	if err != nil {
		return err
	}

	ctx, cancel := analysisContext(cmd.Context(), opts.timeout)
	defer cancel()

	engine := newEngine(opts, log)

	if analyzeInteractive {
		log.Info("launching interactive viewer")
		if err := ui.InteractiveRun(ctx, engine, path, file.Buttons); err != nil {
			return fmt.Errorf("analyze signal: %w", err)
		}
		return nil
	}

	output, err := analyzeAndRender(ctx, engine, file, opts.format, path)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), output, analyzeOutputFile, log)
}

// resolveAnalyzeOptions applies explicitly set flags over the loaded config
func resolveAnalyzeOptions(cmd *cobra.Command) (*analyzeOptions, error) {
	cfg := GetGlobalConfig()

	opts := &analyzeOptions{
		format:       cfg.Output.DefaultFormat,
		repeatFactor: cfg.Analysis.RepeatFactor,
		groupSize:    cfg.Analysis.GroupSize,
		timeout:      cfg.Analysis.Timeout,
		maxFileSize:  cfg.Analysis.MaxFileSize,
	}
	policy := cfg.Analysis.BucketPolicy

	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.format = outputFmt
	}
	if flags.Changed("repeat-factor") {
		opts.repeatFactor = analyzeRepeatFactor
	}
	if flags.Changed("group-size") {
		opts.groupSize = analyzeGroupSize
	}
	if flags.Changed("timeout") {
		opts.timeout = analyzeTimeout
	}
	if flags.Changed("bucket-policy") {
		policy = analyzeBucketPolicy
	}

	bucketPolicy, err := analyzer.ParseBucketPolicy(policy)
	if err != nil {
		return nil, common.NewError(common.ErrTypeConfiguration, "invalid --bucket-policy", err)
	}
	opts.bucketPolicy = bucketPolicy

	if opts.repeatFactor < 1 || int64(opts.repeatFactor) > math.MaxUint32 {
		return nil, common.Errorf(common.ErrTypeConfiguration, "repeat factor must be between 1 and %d, got %d", uint64(math.MaxUint32), opts.repeatFactor)
	}
	if opts.groupSize < 1 {
		return nil, common.Errorf(common.ErrTypeConfiguration, "group size must be greater than 0, got %d", opts.groupSize)
	}
	if _, err := formatter.New(opts.format, formatter.Options{}); err != nil {
		return nil, common.NewError(common.ErrTypeConfiguration, "invalid --output", err)
	}

	return opts, nil
}

func analysisContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func newEngine(opts *analyzeOptions, log *logger.Logger) analyzer.Engine {
	return analyzer.NewEngine().
		WithRepeatFactor(uint32(opts.repeatFactor)). // #nosec G115 - range checked in resolveAnalyzeOptions
		WithBucketPolicy(opts.bucketPolicy).
		WithGroupSize(opts.groupSize).
		WithLogger(log)
}

// readCapture reads and parses a capture file, refusing files larger than maxSize
func readCapture(path string, maxSize int64, log *logger.Logger) (*parser.File, error) {
	if err := validateFilePath(path); err != nil {
		return nil, common.NewError(common.ErrTypeIO, "read capture", err)
	}
	cleanPath := filepath.Clean(path)

	// #nosec G304 - path is validated above
	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, common.NewError(common.ErrTypeIO, "read capture", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("failed to close %s: %v", cleanPath, err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, common.NewError(common.ErrTypeIO, "read capture", err)
	}
	if int64(len(data)) > maxSize {
		return nil, common.Errorf(common.ErrTypeIO, "read capture: %s is larger than max_file_size (%d bytes)", cleanPath, maxSize)
	}

	log.InfoWithFields("read capture", []logger.Field{
		logger.F("path", cleanPath),
		logger.F("bytes", len(data)),
	})

	file, err := parser.NewCaptureParser().WithLogger(log).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse capture %s: %w", cleanPath, err)
	}

	return file, nil
}

// analyzeAndRender runs the engine and formats the report
func analyzeAndRender(ctx context.Context, engine analyzer.Analyzer, file *parser.File, format, source string) ([]byte, error) {
	start := time.Now()
	analysis, err := engine.Analyze(ctx, file.Buttons)
	if err != nil {
		return nil, fmt.Errorf("analyze signal: %w", err)
	}

	f, err := formatter.New(format, formatter.Options{
		Color:  isColorEnabled(),
		Emoji:  !isEmojiDisabled(),
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	output, err := f.Format(analysis)
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	newLogger("cli").InfoWithFields("analysis complete", []logger.Field{
		logger.F("modulation", analysis.Modulation),
		logger.Count(analysis.TotalButtons),
		logger.Duration(time.Since(start)),
	})

	return output, nil
}

// writeOutput writes the report to the output file, or to out when none is set
func writeOutput(out io.Writer, output []byte, outputFile string, log *logger.Logger) error {
	if outputFile == "" {
		if _, err := out.Write(output); err != nil {
			return common.NewError(common.ErrTypeIO, "write report", err)
		}
		return nil
	}

	if err := writeOutputBytesToFile(output, outputFile); err != nil {
		return common.NewError(common.ErrTypeIO, "write report", err)
	}
	log.Info("output saved to: %s", outputFile)
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// writeOutputBytesToFile writes output to a file and syncs it
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// #nosec G304 - output path chosen by the user
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := file.Write(output); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return file.Close()
}
