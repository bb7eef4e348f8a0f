package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/cli/config"
	"github.com/conduit-lang/armgen/internal/cli/ui"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
	"github.com/conduit-lang/armgen/internal/docs"
	"github.com/conduit-lang/armgen/internal/loader"
)

// projectFlags are the config overrides shared by generate, versions, watch
// and serve
type projectFlags struct {
	module   string
	output   string
	versions []string
	formats  []string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.module, "module", "m", "", "Module definition file (overrides config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output root directory (overrides config)")
	cmd.Flags().StringSliceVar(&f.versions, "version", nil, "Target API version, repeatable (overrides config)")
	cmd.Flags().StringSliceVar(&f.formats, "format", nil, "Output formats: json, yaml, markdown (overrides config)")
}

// apply overrides cfg with the flags that were set. Flag paths are relative
// to the working directory, not the project directory.
func (f *projectFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("module") {
		cfg.Module = absPath(f.module)
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = absPath(f.output)
	}
	if cmd.Flags().Changed("version") {
		cfg.Versions = f.versions
	}
	if cmd.Flags().Changed("format") {
		cfg.Formats = f.formats
	}
	_, err := formats(cfg)
	return err
}

func formats(cfg *config.Config) ([]docs.Format, error) {
	out := make([]docs.Format, 0, len(cfg.Formats))
	for _, s := range cfg.Formats {
		f, ok := docs.ParseFormat(s)
		if !ok {
			return nil, fmt.Errorf("unsupported format %q (want json, yaml or markdown)", s)
		}
		out = append(out, f)
	}
	return out, nil
}

// project is a loaded configuration with its parsed targets and module
type project struct {
	cfg     *config.Config
	targets []apiversion.Target
	module  arm.Module
}

func loadProject(cfg *config.Config) (*project, error) {
	targets, err := cfg.Targets()
	if err != nil {
		return nil, err
	}

	m, err := loader.Load(cfg.ModulePath())
	if err != nil {
		return nil, err
	}

	return &project{cfg: cfg, targets: targets, module: m}, nil
}

func newGenerateCommand(opts *globalOptions) *cobra.Command {
	var (
		flags      projectFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile the module into one Swagger document per target version",
		Long: `Compile the module into one Swagger document per target version.

Every version is compiled before anything is written, so a module that
fails to compile for one version leaves the output directory untouched.

Documents are written to
  {output}/{namespace}/{preview|stable}/{version}/{name}.json

Examples:
  armgen generate
  armgen generate --version 2021-01-01-preview --version 2021-06-01
  armgen generate --format json,markdown --json`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGenerate(cmd, opts, &flags)
			if err != nil && jsonOutput {
				if list := errors.List(err); len(list) > 0 {
					if out, jerr := list.ToJSON(); jerr == nil {
						fmt.Fprintln(cmd.OutOrStdout(), out)
					}
				}
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print compiler errors as a JSON array on stdout")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *globalOptions, flags *projectFlags) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return err
	}

	logger, err := opts.newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, err := loadProject(cfg)
	if err != nil {
		return err
	}

	written, err := generate(p, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range written {
		ui.Success(out, opts.noColor, "%s", line)
	}
	return nil
}

// generate compiles and writes every target of p, returning one summary
// line per written document
func generate(p *project, logger *zap.Logger) ([]string, error) {
	fmts, err := formats(p.cfg)
	if err != nil {
		return nil, err
	}

	writer, err := docs.NewFileWriter(&docs.Config{
		OutputDir: p.cfg.OutputDir(),
		Formats:   fmts,
	})
	if err != nil {
		return nil, err
	}

	written, err := docs.NewGeneratorWithWriter(writer, logger).Generate(p.module, p.targets)
	if err != nil {
		return nil, err
	}

	primary := docs.FormatJSON
	if len(fmts) > 0 {
		primary = fmts[0]
	}

	lines := make([]string, 0, len(written))
	for _, doc := range written {
		path, err := writer.Path(doc, primary)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("%s -> %s (%d paths, %d definitions)",
			doc.Target, path, len(doc.Swagger.Paths.Paths), len(doc.Swagger.Definitions)))
	}
	return lines, nil
}
