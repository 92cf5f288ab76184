package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/irsum/internal/common"
	"github.com/yildizm/irsum/internal/config"
	"github.com/yildizm/irsum/internal/emoji"
	"github.com/yildizm/irsum/internal/logger"
	"github.com/yildizm/irsum/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "irsum",
		Short: "Infrared capture analysis tool",
		Long: `irsum reads infrared remote capture files, works out whether the raw
signals use pulse width or pulse distance modulation, and decodes every raw
button into bits.

Parsed buttons are listed by name. Raw buttons are decoded with thresholds
derived from the whole file, so every button in a capture must come from the
same remote.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupGlobals,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newButtonsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setupGlobals loads the configuration and applies it to the shared
// emoji, color and theme state
func setupGlobals(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		// config subcommands report problems themselves
		if !isConfigCommand(cmd) {
			return common.NewError(common.ErrTypeConfiguration, "load configuration", err)
		}
		cfg = config.DefaultConfig()
	}
	globalConfig = cfg

	if cfg.Output.Verbose && !cmd.Flags().Changed("verbose") {
		verbose = true
	}

	// Auto-disable emojis on Windows if not explicitly set
	if runtime.GOOS == "windows" && !cmd.Flags().Changed("no-emoji") {
		noEmoji = true
	}
	if !cfg.Output.Emoji && !cmd.Flags().Changed("no-emoji") {
		noEmoji = true
	}
	emoji.SetEmojiDisabled(noEmoji)

	ui.SetColorDisabled(!isColorEnabled())
	if !ui.SetThemeByName(cfg.Output.Theme) {
		newLogger("cli").Warn("unknown theme %q, using default", cfg.Output.Theme)
	}

	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "irsum %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the configuration loaded for this run
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		globalConfig = config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func isEmojiDisabled() bool {
	return emoji.IsEmojiDisabled()
}

// isColorEnabled combines --no-color, the color_mode setting and NO_COLOR
func isColorEnabled() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return os.Getenv("NO_COLOR") == ""
	}
}

// newLogger creates a component logger that follows --verbose and logging.format
func newLogger(component string) *logger.Logger {
	log := logger.NewWithCallback(component, isVerbose)
	log.SetFormat(logger.Format(GetGlobalConfig().Logging.Format))
	return log
}
