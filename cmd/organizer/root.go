package main

import (
	"organizer/internal/config"
	"organizer/internal/errors"
	"organizer/internal/log"
	"organizer/internal/organize"
	"organizer/pkg/types"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config

	flagDir     string
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "organizer [flags] [DIRECTORY]",
		Short: "Sort a directory's files into category folders",
		Long: `Organizer scans a single directory, classifies each regular file by its
extension and moves it into a category folder (Images, Documents, Audio, ...).
Name collisions are resolved with a numeric suffix; nothing is ever
overwritten. Subdirectories are left alone.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags parsed; a bad config file is not a usage mistake.
			cmd.SilenceUsage = true

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// From here failures are logged once by us, not printed by cobra.
			cmd.SilenceErrors = true

			applyFlags(cfg, args)
			log.SetDebug(cfg.Settings.Verbose)

			engine, err := organize.NewWithConfig(cfg)
			if err != nil {
				log.Error("%v", err)
				return err
			}

			report, err := engine.OrganizeDirectory(cfg.Settings.Directory)
			if err != nil {
				return err // already logged by the engine
			}

			printSummary(report, cfg.Settings.DryRun)
			if report.Failed {
				log.Error("File organization failed")
				return errors.New("file organization failed")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/organizer/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "target directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagDryRun, "dry-run", "n", false, "show planned moves without changing the file system")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

// applyFlags folds the CLI flags into the loaded configuration. A
// positional DIRECTORY overrides --dir, which overrides the config file.
// The boolean flags can only switch their settings on.
func applyFlags(cfg *config.Config, args []string) {
	if flagDir != "" {
		cfg.Settings.Directory = flagDir
	}
	if len(args) > 0 {
		cfg.Settings.Directory = args[0]
	}
	if flagDryRun {
		cfg.Settings.DryRun = true
	}
	if flagVerbose {
		cfg.Settings.Verbose = true
	}
}

func printSummary(report *types.Report, dryRun bool) {
	failed := report.FailureCount()
	if dryRun {
		log.Info("Dry-run complete: %d moves planned, %d failed, %d entries skipped",
			len(report.Results)-failed, failed, report.Skipped)
		return
	}
	log.Info("Done: %d moved, %d failed, %d entries skipped",
		report.MovedCount(), failed, report.Skipped)
}
