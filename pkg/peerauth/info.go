package peerauth

import (
	"net"

	"github.com/cofide/peerid/pkg/peerid"
)

const (
	authType = "peer-identity"
)

type CallerInfo struct {
	Addr     net.Addr
	Identity peerid.Identity
	// Source is what Identity's value means on this platform.
	Source peerid.Source
	// BinaryName is empty when the caller's executable cannot be inspected.
	BinaryName string
}

// PID returns the caller's process ID, if the identity is one.
func (c CallerInfo) PID() (int32, bool) {
	if c.Source != peerid.SourceProcessID {
		return 0, false
	}
	return c.Identity.Int32()
}

type AuthInfo struct {
	Caller CallerInfo
}

// AuthType returns the authentication type and allows us to
// conform to the gRPC AuthInfo interface
func (AuthInfo) AuthType() string {
	return authType
}
