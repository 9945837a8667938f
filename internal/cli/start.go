package cli

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfirsich/timetrackd/internal/daemon"
)

const daemonChildEnv = "TIMETRACKD_DAEMON_CHILD"

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sampler as a background daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm := daemon.New(cfg.PIDFile)

		running, pid, err := dm.IsRunning()
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}
		if running {
			return fmt.Errorf("daemon is already running (PID: %d)", pid)
		}

		if os.Getenv(daemonChildEnv) != "1" {
			return daemonize()
		}

		return runDaemonChild(dm)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func logFilePath() string {
	return fmt.Sprintf("/tmp/timetrackd-%d.log", os.Getuid())
}

// daemonize forks a detached child in a new session. The child's stdout and
// stderr go to the log file, so change lines and diagnostics end up there.
func daemonize() error {
	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	env := os.Environ()
	env = append(env, daemonChildEnv+"=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, logFile, logFile},
		Sys: &syscall.SysProcAttr{
			Setsid: true,
		},
	}

	process, err := os.StartProcess(os.Args[0], os.Args, procAttr)
	if err != nil {
		return fmt.Errorf("failed to start daemon process: %w", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: %s\n", logFilePath())
	return nil
}

// runDaemonChild is the forked child: it records its PID and runs the loop
// with both output streams already redirected by the parent.
func runDaemonChild(dm *daemon.Daemon) error {
	if err := dm.WritePID(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer dm.RemovePID()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("Starting timetrackd daemon...")
	logger.Printf("%s", cfg)

	return runLoop(os.Stdout, logger)
}
