package commands

import (
	"github.com/spf13/cobra"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/cli/ui"
)

func newVersionsCommand(opts *globalOptions) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Show which resources each target version contains",
		Long: `Show a table of resources against the configured target versions.

A resource is listed as visible in a version when its lifetime makes it
appear there: GA resources from their GA date in every channel, preview
resources from their preview date in preview versions only, and nothing
once the removal date that follows a deprecation has passed. Resources that
are deprecated but not yet removed are marked "deprecated".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			p, err := loadProject(cfg)
			if err != nil {
				return err
			}

			headers := []string{"Resource", "Category"}
			for _, t := range p.targets {
				headers = append(headers, t.String())
			}

			table := ui.NewTable(cmd.OutOrStdout(), headers, &ui.TableOptions{NoColor: opts.noColor})
			for _, r := range p.module.Resources {
				cells := []ui.Cell{ui.Plain(r.Plural), ui.Plain(r.Category.String())}
				for _, t := range p.targets {
					cells = append(cells, visibilityCell(r, t))
				}
				table.AddCells(cells...)
			}
			table.Render()

			for _, t := range p.targets {
				if len(p.module.VisibleResources(t)) == 0 {
					ui.Warning(cmd.OutOrStdout(), opts.noColor, "no resources are visible in %s", t)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func visibilityCell(r arm.Resource, t apiversion.Target) ui.Cell {
	switch {
	case !r.IsVisible(t):
		return ui.Cell{Text: "-", Style: ui.StyleMuted}
	case r.Deprecated != nil && apiversion.AtMost(*r.Deprecated, t.Date):
		return ui.Cell{Text: "deprecated", Style: ui.StyleWarn}
	default:
		return ui.Cell{Text: "yes", Style: ui.StyleGood}
	}
}
