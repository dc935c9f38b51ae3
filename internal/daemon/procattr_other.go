//go:build !unix

package daemon

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
