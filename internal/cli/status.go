package cli

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"

	"github.com/pfirsich/timetrackd/internal/daemon"
	"github.com/pfirsich/timetrackd/pkg/sampler"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and probe tool availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm := daemon.New(cfg.PIDFile)

		running, pid, err := dm.IsRunning()
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}

		if !running {
			fmt.Println("Status: Not running")
		} else {
			fmt.Printf("Status: Running (PID: %d)\n", pid)
			printProcessInfo(pid)
		}

		fmt.Printf("Sample Interval: %v\n", cfg.Interval())
		fmt.Printf("Database: %s (%s)\n", cfg.DatabasePath, cfg.DatabaseType)

		fmt.Println("\nProbe Tools:")
		for _, tool := range sampler.Tools() {
			if _, err := exec.LookPath(tool); err != nil {
				fmt.Printf("  %s: missing\n", tool)
			} else {
				fmt.Printf("  %s: found\n", tool)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// printProcessInfo shows uptime and memory of the daemon process. Failures
// are ignored: the status line above already told the user what matters.
func printProcessInfo(pid int) {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return
	}

	if created, err := proc.CreateTime(); err == nil {
		uptime := time.Since(time.UnixMilli(created)).Round(time.Second)
		fmt.Printf("Uptime: %v\n", uptime)
	}

	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		fmt.Printf("Memory: %.1f MiB\n", float64(mem.RSS)/(1024*1024))
	}
}
