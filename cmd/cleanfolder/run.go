package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vmunix/cleanfolder/internal/config"
	"github.com/vmunix/cleanfolder/internal/history"
	"github.com/vmunix/cleanfolder/internal/organizer"
	"github.com/vmunix/cleanfolder/internal/runlock"
)

func runOrganize(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if cfgPath != "" {
		log.Debug("config loaded", "path", cfgPath)
	}

	orgCfg, err := organizerConfig(cmd, cfg)
	if err != nil {
		return err
	}
	noHistory, _ := cmd.Flags().GetBool("no-history")

	lock, err := runlock.Acquire(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warn("release run lock", "error", err)
		}
	}()

	var observers organizer.Observers

	var rec *history.Recorder
	if cfg.History.Enabled && !noHistory && !orgCfg.DryRun {
		store, err := history.Open(cfg.History.Path)
		if err == nil {
			defer func() { _ = store.Close() }()
			rec, err = history.NewRecorder(store, root, orgCfg.Collision, log)
		}
		if err != nil {
			// History is informational; sorting goes ahead without it.
			log.Warn("history disabled for this run", "path", cfg.History.Path, "error", err)
		} else {
			observers = append(observers, rec)
		}
	}

	var bar *progressObserver
	if !jsonOutput && isTerminal(os.Stderr) {
		bar = &progressObserver{}
		observers = append(observers, bar)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, runErr := organizer.New(orgCfg, observers, log.With("component", "organizer")).Run(ctx, root)
	if bar != nil {
		bar.finish()
	}
	if rec != nil {
		if err := rec.Finish(res, runErr); err != nil {
			log.Warn("record run result", "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), newRunReport(res))
	}
	renderReport(cmd.OutOrStdout(), res, isTerminal(cmd.OutOrStdout()))
	return nil
}

// organizerConfig merges the [organize] section with command line flags.
func organizerConfig(cmd *cobra.Command, cfg *config.Config) (organizer.Config, error) {
	if cmd.Flags().Changed("collision") {
		cfg.Organize.Collision, _ = cmd.Flags().GetString("collision")
	}
	if noUnpack, _ := cmd.Flags().GetBool("no-unpack"); noUnpack {
		cfg.Organize.UnpackArchives = false
	}
	if noPrune, _ := cmd.Flags().GetBool("no-prune"); noPrune {
		cfg.Organize.PruneEmpty = false
	}

	orgCfg, err := cfg.Organizer()
	if err != nil {
		return organizer.Config{}, err
	}
	orgCfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	return orgCfg, nil
}
