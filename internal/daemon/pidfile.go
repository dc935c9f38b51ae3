package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadPID reads the process id written by the daemon.
func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file %s: %w", path, err)
	}
	return pid, nil
}

// IsRunning reports whether the PID file names a process that can be
// signalled. A missing or unreadable file means not running.
func IsRunning(pidFile string) bool {
	pid, err := ReadPID(pidFile)
	if err != nil || pid <= 0 {
		return false
	}
	return processAlive(pid)
}
