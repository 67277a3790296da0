package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"organizer/internal/log"
	"organizer/internal/organize"
	"organizer/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var interval int

	cmd := &cobra.Command{
		Use:   "watch [flags] [DIRECTORY]",
		Short: "Watch a directory and organize new files as they appear",
		Long: `Watch runs in the foreground and re-runs an organizing pass whenever new
files show up in the target directory, once activity has settled for the
configured interval. Press Ctrl+C to stop.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true

			applyFlags(cfg, args)
			if cmd.Flags().Changed("interval") {
				cfg.Watch.Interval = interval
			}
			if err := cfg.Validate(); err != nil {
				log.Error("%v", err)
				return err
			}
			log.SetDebug(cfg.Settings.Verbose)

			engine, err := organize.NewWithConfig(cfg)
			if err != nil {
				log.Error("%v", err)
				return err
			}

			runner, err := watch.NewRunner(engine, cfg.Settings.Directory,
				time.Duration(cfg.Watch.Interval)*time.Second)
			if err != nil {
				log.Error("%v", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runner.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&interval, "interval", "i", 2, "seconds of quiet before organizing new files")

	return cmd
}
