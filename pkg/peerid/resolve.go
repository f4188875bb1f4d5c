package peerid

import (
	"syscall"
)

// ResolvePeerIdentity returns the identity of the peer of conn, which must
// be a connected local-domain socket. conn is borrowed: it is neither closed
// nor modified.
//
// The lookup is a single blocking native query and is never retried. A
// failure is returned as an *os.SyscallError carrying the native error code.
func ResolvePeerIdentity(conn syscall.Conn) (Identity, error) {
	if conn == nil {
		return None(), ErrInvalidConnection
	}

	rawconn, err := conn.SyscallConn()
	if err != nil {
		return None(), err
	}

	var id Identity
	ctrlErr := rawconn.Control(func(fd uintptr) {
		id, err = peerIdentityFromFD(fd)
	})
	if ctrlErr != nil {
		return None(), ctrlErr
	}
	if err != nil {
		return None(), err
	}
	return id, nil
}
