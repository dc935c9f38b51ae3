//go:build !unix

package daemon

// acquireSpawnLock is a no-op on non-unix platforms.
func acquireSpawnLock(string) (func() error, error) {
	return func() error { return nil }, nil
}
