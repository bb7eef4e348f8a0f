package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/cli/config"
	"github.com/conduit-lang/armgen/internal/cli/ui"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
	strutil "github.com/conduit-lang/armgen/internal/util/strings"
)

var namespacePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*(\.[A-Z][A-Za-z0-9]*)+$`)

// validateNamespace checks for a dotted provider namespace like Contoso.Widgets
func validateNamespace(ns string) error {
	if !namespacePattern.MatchString(ns) {
		return fmt.Errorf("namespace %q must be dotted and capitalized, e.g. Contoso.Widgets", ns)
	}
	return nil
}

type initOptions struct {
	namespace string
	name      string
	versions  []string
	force     bool
	noInput   bool
}

// scaffoldConfig is the armgen.yaml written by init
type scaffoldConfig struct {
	Module   string   `yaml:"module"`
	Output   string   `yaml:"output"`
	Versions []string `yaml:"versions"`
	LogLevel string   `yaml:"log_level"`
}

// scaffoldModule is the starter module.yaml written by init
type scaffoldModule struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Namespace   string             `yaml:"namespace"`
	Resources   []scaffoldResource `yaml:"resources"`
}

type scaffoldResource struct {
	Name       string                      `yaml:"name"`
	Plural     string                      `yaml:"plural"`
	Category   string                      `yaml:"category"`
	Lifetime   map[string]string           `yaml:"lifetime,flow"`
	Path       []scaffoldSegment           `yaml:"path"`
	Properties map[string]scaffoldProperty `yaml:"properties"`
}

type scaffoldSegment struct {
	Segment   string            `yaml:"segment"`
	Parameter scaffoldParameter `yaml:"parameter,flow"`
}

type scaffoldParameter struct {
	Name      string `yaml:"name"`
	MinLength int    `yaml:"minLength"`
	MaxLength int    `yaml:"maxLength"`
	Pattern   string `yaml:"pattern"`
}

type scaffoldProperty struct {
	Description string            `yaml:"description"`
	Type        string            `yaml:"type"`
	Mutability  []string          `yaml:"mutability,omitempty,flow"`
	Required    bool              `yaml:"required,omitempty"`
	Lifetime    map[string]string `yaml:"lifetime,flow"`
}

func newInitCommand(opts *globalOptions) *cobra.Command {
	var o initOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create armgen.yaml and a starter module definition",
		Long: `Create armgen.yaml and a starter module.yaml in the project directory.

Values not given as flags are prompted for unless --no-input is set.

Examples:
  armgen init
  armgen init --namespace Contoso.Widgets --version 2021-01-01-preview --no-input`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, &o)
		},
	}

	cmd.Flags().StringVar(&o.namespace, "namespace", "", "Resource provider namespace, e.g. Contoso.Widgets")
	cmd.Flags().StringVar(&o.name, "name", "", "Display name (document title)")
	cmd.Flags().StringSliceVar(&o.versions, "version", nil, "Target API version, repeatable")
	cmd.Flags().BoolVar(&o.force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&o.noInput, "no-input", false, "Never prompt; fail when a value is missing")

	return cmd
}

func runInit(cmd *cobra.Command, opts *globalOptions, o *initOptions) error {
	// A new project starts where it is asked to, never in a parent project.
	dir := opts.dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.FileName+".yaml")
	modulePath := filepath.Join(dir, "module.yaml")

	if !o.force {
		for _, p := range []string{configPath, modulePath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	if err := o.complete(opts.prompter); err != nil {
		return err
	}

	targets := make([]apiversion.Target, 0, len(o.versions))
	for _, v := range o.versions {
		t, err := apiversion.ParseTarget(v)
		if err != nil {
			return errors.NewInvalidVersion(v).WithDetail(err.Error())
		}
		targets = append(targets, t)
	}

	cfgData, err := yaml.Marshal(scaffoldConfig{
		Module:   "module.yaml",
		Output:   "specification",
		Versions: o.versions,
		LogLevel: "info",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	moduleData, err := yaml.Marshal(starterModule(o.namespace, o.name, targets[0]))
	if err != nil {
		return fmt.Errorf("failed to marshal module: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(configPath, cfgData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	if err := os.WriteFile(modulePath, moduleData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", modulePath, err)
	}

	out := cmd.OutOrStdout()
	ui.Success(out, opts.noColor, "Created %s", configPath)
	ui.Success(out, opts.noColor, "Created %s", modulePath)
	fmt.Fprintln(out, "\nNext: edit module.yaml, then run armgen generate")
	return nil
}

// complete fills missing values by prompting, then validates them
func (o *initOptions) complete(p prompter) error {
	ask := func(current *string, message, def, help string) error {
		if *current != "" {
			return nil
		}
		if o.noInput || p == nil {
			return fmt.Errorf("%s is required", strings.TrimSuffix(message, ":"))
		}
		answer, err := p.Input(message, def, help)
		if err != nil {
			return err
		}
		*current = strings.TrimSpace(answer)
		return nil
	}

	if err := ask(&o.namespace, "Namespace:", "", "Resource provider namespace, e.g. Contoso.Widgets"); err != nil {
		return err
	}
	if err := validateNamespace(o.namespace); err != nil {
		return err
	}

	if err := ask(&o.name, "Display name:", strings.ReplaceAll(o.namespace, ".", " "), "Title of the generated documents"); err != nil {
		return err
	}

	if len(o.versions) == 0 {
		var versions string
		if err := ask(&versions, "Target versions:", "", "Comma separated, e.g. 2021-01-01-preview,2021-06-01"); err != nil {
			return err
		}
		for _, v := range strings.Split(versions, ",") {
			if v = strings.TrimSpace(v); v != "" {
				o.versions = append(o.versions, v)
			}
		}
	}
	if len(o.versions) == 0 {
		return fmt.Errorf("at least one target version is required")
	}
	return nil
}

// starterModule is a single tracked resource named after the last namespace
// segment, introduced in first
func starterModule(namespace, name string, first apiversion.Target) scaffoldModule {
	plural := strutil.LastSegment(namespace)
	singular := strutil.Singularize(plural)
	segment := strutil.Uncapitalize(plural)

	channel := "ga"
	if first.Channel == apiversion.Preview {
		channel = "preview"
	}
	lifetime := map[string]string{channel: first.Date.String()}

	return scaffoldModule{
		Name:        name,
		Description: name + " resource provider",
		Namespace:   namespace,
		Resources: []scaffoldResource{{
			Name:     singular,
			Plural:   plural,
			Category: "tracked",
			Lifetime: lifetime,
			Path: []scaffoldSegment{{
				Segment: segment,
				Parameter: scaffoldParameter{
					Name:      strutil.Uncapitalize(singular) + "Name",
					MinLength: 3,
					MaxLength: 63,
					Pattern:   "^[a-zA-Z0-9-]{3,63}$",
				},
			}},
			Properties: map[string]scaffoldProperty{
				"displayName": {
					Description: "The display name of the " + strings.ToLower(singular),
					Type:        "string",
					Required:    true,
					Lifetime:    lifetime,
				},
				"provisioningState": {
					Description: "The status of the last operation",
					Type:        "string",
					Mutability:  []string{"read"},
					Lifetime:    lifetime,
				},
			},
		}},
	}
}
