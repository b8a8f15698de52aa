package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/assetwatch/pkg/config"
	"github.com/arthur-debert/assetwatch/pkg/core"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild files as they change",
		Long: `Watch wipes the destination roots, processes every source file and then
keeps processing files as they are created, modified or removed, until
interrupted. Failures are logged; they never stop watching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, map[string]interface{}{"watch.enabled": true})
			if err != nil {
				return err
			}
			return runWatch(cmd, cfg)
		},
	}
}

func runWatch(cmd *cobra.Command, cfg *config.Config) error {
	logger := logging.GetLogger("cmd.watch")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := core.NewPipeline(cfg, core.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn().Err(err).Msg("cannot stop stylesheet compiler")
		}
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %d source roots, press Ctrl-C to stop\n", len(cfg.Sources))
	return pipeline.Watch(ctx)
}
