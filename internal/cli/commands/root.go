package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conduit-lang/armgen/internal/cli/config"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	dir     string
	verbose bool
	noColor bool

	// logger, when set, replaces the logger built from flags and config
	logger *zap.Logger
	// prompter asks interactive questions
	prompter prompter
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&globalOptions{prompter: surveyPrompter{}})
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "armgen",
		Short: "Compile versioned resource-provider modules into ARM Swagger documents",
		Long: color.CyanString(`armgen - ARM Swagger compiler

armgen reads a lifetime-annotated module definition and compiles one
Swagger 2.0 document per target API version. Resources and properties
appear in a version only while their lifetime makes them visible there.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", "", "Project directory containing armgen.yaml (default: nearest parent with one)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newGenerateCommand(opts))
	rootCmd.AddCommand(newVersionsCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the armgen version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "armgen version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// loadConfig loads armgen.yaml from the project directory
func (o *globalOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.projectDir())
}

// projectDir is --dir when given, otherwise the nearest directory at or
// above the working directory holding armgen.yaml, falling back to "."
func (o *globalOptions) projectDir() string {
	if o.dir != "" {
		return o.dir
	}
	if root, err := config.GetProjectRoot(); err == nil {
		return root
	}
	return "."
}

// newLogger builds the command logger: a development logger with --verbose,
// otherwise a production logger at the configured level
func (o *globalOptions) newLogger(level string) (*zap.Logger, error) {
	if o.logger != nil {
		return o.logger, nil
	}
	if o.verbose {
		return zap.NewDevelopment()
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// printError prints coded errors in full and anything else on one line
func printError(w io.Writer, err error) {
	errorColor := color.New(color.FgRed, color.Bold)
	switch list := errors.List(err); len(list) {
	case 0:
		errorColor.Fprintf(w, "Error: %v\n", err)
	case 1:
		errorColor.Fprint(w, errors.FormatError(list[0]))
	default:
		errorColor.Fprint(w, errors.FormatErrorList(list))
	}
}
