package peerauth

import (
	"net"
	"syscall"
)

type Conn struct {
	net.Conn
	Info AuthInfo

	release func()
}

// Close closes the connection and frees its slot in the listener.
func (c *Conn) Close() error {
	err := c.Conn.Close()
	if c.release != nil {
		c.release()
	}
	return err
}

// SyscallConn exposes the raw socket of the wrapped connection so the
// caller can be resolved again, e.g. by CallerFromConn.
func (c *Conn) SyscallConn() (syscall.RawConn, error) {
	sc, ok := c.Conn.(syscall.Conn)
	if !ok {
		return nil, ErrInvalidConnection
	}
	return sc.SyscallConn()
}
