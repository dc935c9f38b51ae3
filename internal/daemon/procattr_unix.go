//go:build unix

package daemon

import "syscall"

// detachedAttr starts the daemon in its own session so it outlives the client
// and its terminal.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
