//go:build !windows

package peerid

import "net"

// ResolveNamedPipeIdentity is only supported on Windows.
func ResolveNamedPipeIdentity(net.Conn) (Identity, error) {
	return None(), ErrUnsupportedPlatform
}
