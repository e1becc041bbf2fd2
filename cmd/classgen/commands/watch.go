package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/classgen/display"
	"github.com/teranos/classgen/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Regenerate whenever descriptions change",
		Long: `Generate once, then regenerate whenever a description changes.

Bursts of changes are collapsed into one run after watch.debounce_ms of
quiet. A description that fails to build is reported and the watch goes on.
Stop with Ctrl-C.`,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	runner, err := p.runner(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if summary, err := runner.Generate(ctx, args); err != nil {
		display.Error(cmd.ErrOrStderr(), err)
	} else if err := report(cmd, summary); err != nil {
		return err
	}

	roots := runner.Sources(args)
	w, err := watch.New(watch.Options{
		Roots:    roots,
		Ignore:   []string{runner.OutputDir()},
		Debounce: p.cfg.Watch.Debounce(),
	}, func(ctx context.Context, changed []string) error {
		summary, err := runner.Generate(ctx, args)
		if err != nil {
			return err
		}
		return report(cmd, summary)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), pterm.Gray("Watching "+strings.Join(roots, ", ")+" (Ctrl-C to stop)"))
	return w.Run(ctx)
}
