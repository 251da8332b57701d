package engine

import (
	"fmt"
	"os"
	"os/exec"
)

// CommandSpawner builds a Spawner that starts cmdline detached from the
// service process. Engine output goes to logFile (appended) so the daemon's
// own log stream stays clean; empty logFile discards it.
func CommandSpawner(cmdline []string, logFile string) Spawner {
	return func() (int, error) {
		if len(cmdline) == 0 {
			return 0, fmt.Errorf("empty engine command")
		}
		cmd := exec.Command(cmdline[0], cmdline[1:]...)
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return 0, fmt.Errorf("open engine log: %w", err)
			}
			cmd.Stdout = f
			cmd.Stderr = f
			defer f.Close()
		}
		if err := cmd.Start(); err != nil {
			return 0, fmt.Errorf("start %s: %w", cmdline[0], err)
		}
		pid := cmd.Process.Pid
		// Detach: the engine outlives the service and is never reaped here.
		if err := cmd.Process.Release(); err != nil {
			return pid, fmt.Errorf("release %s: %w", cmdline[0], err)
		}
		return pid, nil
	}
}
