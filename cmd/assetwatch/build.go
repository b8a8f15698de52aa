package main

import (
	"fmt"

	"github.com/arthur-debert/assetwatch/pkg/config"
	"github.com/arthur-debert/assetwatch/pkg/core"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/style"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every source file once",
		Long: `Build wipes the destination roots, processes every file under the source
roots and prints a summary. It exits non-zero if any file failed.

With --watch (or watch.enabled in the configuration) it keeps running
after the build, like the watch command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := map[string]interface{}{}
			if cmd.Flags().Changed("watch") {
				extra["watch.enabled"] = watch
			}
			cfg, err := opts.loadConfig(cmd, extra)
			if err != nil {
				return err
			}
			if cfg.Watch.Enabled {
				return runWatch(cmd, cfg)
			}
			return runBuild(cmd, cfg)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep watching after the build")
	return cmd
}

func runBuild(cmd *cobra.Command, cfg *config.Config) error {
	logger := logging.GetLogger("cmd.build")
	done := logging.LogOperationStart(logger, "build")
	defer done()

	pipeline, err := core.NewPipeline(cfg, core.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn().Err(err).Msg("cannot stop stylesheet compiler")
		}
	}()

	summary, err := pipeline.Build(cmd.Context())
	if err != nil {
		return err
	}

	rendered, err := style.RenderSummary(summary)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	if !summary.OK() {
		return errBuildFailed
	}
	return nil
}
