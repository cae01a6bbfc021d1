package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontodiff/metric"
	"github.com/c360studio/ontodiff/watch"
)

func (a *app) watchCmd() *cobra.Command {
	var flags diffFlags

	cmd := &cobra.Command{
		Use:   "watch <old> <new>",
		Short: "Re-run the diff whenever an input file changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(a.cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pub, err := a.publisher(flags.publish)
			if err != nil {
				return err
			}
			defer pub.Close()

			d := &differ{
				cfg:       a.cfg,
				flags:     flags,
				logger:    a.logger,
				recorder:  metric.NewRecorder(),
				publisher: pub,
			}
			oldPatterns, newPatterns := splitPatterns(args[0]), splitPatterns(args[1])
			return a.watchLoop(ctx, d, oldPatterns, newPatterns, cmd)
		},
	}
	flags.register(cmd)
	return cmd
}

// watchLoop runs the diff once, then again after every change batch, until
// ctx is cancelled. A failing run is logged and the loop keeps watching.
func (a *app) watchLoop(ctx context.Context, d *differ, oldPatterns, newPatterns []string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if _, err := d.run(ctx, oldPatterns, newPatterns, out); err != nil {
		a.logger.Error("Diff failed", slog.String("error", err.Error()))
	}

	w, err := watch.NewWatcher(watch.WatcherConfig{
		Patterns:      append(append([]string{}, oldPatterns...), newPatterns...),
		DebounceDelay: a.cfg.Watch.Debounce,
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	for batch := range w.Events() {
		for _, c := range batch.Changes {
			a.logger.Info("Ontology changed", slog.String("path", c.Path), slog.String("op", string(c.Operation)))
		}
		fmt.Fprintf(out, "\n--- %s: %d file(s) changed ---\n", batch.At.Format("15:04:05"), len(batch.Changes))
		if _, err := d.run(ctx, oldPatterns, newPatterns, out); err != nil {
			a.logger.Error("Diff failed", slog.String("error", err.Error()))
		}
	}
	return nil
}
