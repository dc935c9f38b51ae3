// Package daemon keeps one browser daemon per session alive.
package daemon

import (
	"strings"
	"unicode/utf16"
)

// DefaultSession is used when no session name is configured.
const DefaultSession = "default"

const (
	portBase = 49152
	portSpan = 16383
)

// Port derives the daemon's loopback port from the session name. Every
// client computes the same port for the same name; the result is always in
// [49152, 65535).
func Port(session string) int {
	var hash int32
	for _, unit := range utf16.Encode([]rune(session)) {
		hash = (hash << 5) - hash + int32(unit)
	}
	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return portBase + int(h%portSpan)
}

// ResolveSession picks the session name: env wins over configured, then
// DefaultSession.
func ResolveSession(env, configured string) string {
	if s := strings.TrimSpace(env); s != "" {
		return s
	}
	if s := strings.TrimSpace(configured); s != "" {
		return s
	}
	return DefaultSession
}
