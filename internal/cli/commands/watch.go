package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/armgen/internal/cli/config"
	"github.com/conduit-lang/armgen/internal/cli/ui"
	"github.com/conduit-lang/armgen/internal/watch"
)

func newWatchCommand(opts *globalOptions) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate documents whenever the module file changes",
		Long: `Generate every target version, then watch the module file and
armgen.yaml and regenerate on each change. Compile errors are reported and
the previous documents are left in place.

Examples:
  armgen watch
  armgen watch --version 2021-06-01 --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *globalOptions, flags *projectFlags) error {
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

	out := cmd.OutOrStdout()
	rebuild := func() {
		p, err := loadProject(cfg)
		if err != nil {
			printError(out, err)
			return
		}
		lines, err := generate(p, logger)
		if err != nil {
			printError(out, err)
			return
		}
		for _, line := range lines {
			ui.Success(out, opts.noColor, "%s", line)
		}
	}

	modulePath := cfg.ModulePath()

	var watcher *watch.FileWatcher
	watcher, err = watch.NewFileWatcher(watch.Options{
		Files:  watchedFiles(cfg),
		Logger: logger,
	}, func(changed []string) error {
		logger.Debug("regenerating", zap.Strings("files", changed))
		// armgen.yaml may have changed versions, output or the module path
		if reloaded, err := opts.loadConfig(); err == nil {
			if err := flags.apply(cmd, reloaded); err == nil {
				cfg = reloaded
			}
		}
		if files := watchedFiles(cfg); !slices.Equal(files, watcher.Files()) {
			if err := watcher.SetFiles(files); err != nil {
				return err
			}
			logger.Info("watching new files", zap.Strings("files", files))
		}
		rebuild()
		return nil
	})
	if err != nil {
		return err
	}

	rebuild()

	if err := watcher.Start(); err != nil {
		return err
	}

	banner := color.New(color.FgCyan, color.Bold)
	if opts.noColor {
		banner.DisableColor()
	}
	banner.Fprintf(out, "Watching %s\n", modulePath)
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	<-ctx.Done()

	if err := watcher.Stop(); err != nil {
		return fmt.Errorf("error stopping watcher: %w", err)
	}
	return nil
}

// watchedFiles are the absolute, sorted paths of the module file and the
// config file, if there is one
func watchedFiles(cfg *config.Config) []string {
	files := []string{absPath(cfg.ModulePath())}
	if path, ok := config.FilePath(cfg.Dir); ok {
		files = append(files, absPath(path))
	}
	slices.Sort(files)
	return slices.Compact(files)
}
