//go:build unix

package daemon

import "golang.org/x/sys/unix"

// processAlive sends signal 0, which checks existence and permission only.
func processAlive(pid int) bool {
	return unix.Kill(pid, 0) == nil
}
