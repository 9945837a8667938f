// Package cli wires the timetrackd commands. Running the bare binary
// samples in the foreground; start/stop/status manage a detached instance.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfirsich/timetrackd/internal/config"
	"github.com/pfirsich/timetrackd/internal/tracker"
	"github.com/pfirsich/timetrackd/pkg/sampler"
)

// cfg holds the resolved configuration, populated in PersistentPreRunE.
var cfg *config.Config

var configPath string

var rootCmd = &cobra.Command{
	Use:   "timetrackd",
	Short: "Desktop activity sampler that prints a change log of the active window",
	Long: `timetrackd periodically probes the active window, its owning process,
idle time and screensaver state through external tools (xdotool, ps,
gnome-screensaver-command, xprintidle) and prints a line whenever the
observed state changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version needs no configuration and must not fail without one.
		if cmd.Name() == "version" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand: sample in the foreground, change lines to
		// stdout, diagnostics to stderr.
		fmt.Printf("%s\n", cfg)
		return runLoop(os.Stdout, log.New(os.Stderr, "", log.LstdFlags))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: <user config dir>/timetrackd.toml)")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runLoop runs the sampling loop until SIGINT/SIGTERM.
func runLoop(out io.Writer, logger *log.Logger) error {
	svc := tracker.NewService(cfg, sampler.New(sampler.NewRunner()), out, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Println("Received shutdown signal")
		cancel()
		svc.Stop()
	}()

	if err := svc.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
