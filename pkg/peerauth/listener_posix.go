//go:build !windows

package peerauth

import (
	"math"
	"net"
	"syscall"
)

type ListenerFactoryOS struct {
	NewUnixListener func(network string, laddr *net.UnixAddr) (*net.UnixListener, error)
}

func (lf *ListenerFactory) ListenUnix(network string, laddr *net.UnixAddr) (*Listener, error) {
	if lf.NewUnixListener == nil {
		lf.NewUnixListener = net.ListenUnix
	}
	if lf.Log == nil {
		lf.Log = newNoopLogger()
	}

	maxConns := lf.MaxConns
	if maxConns <= 0 {
		var rlimit syscall.Rlimit
		if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rlimit); err != nil {
			return nil, err
		}
		// Cur is signed on some BSDs.
		maxConns = connLimitBelowRlimit(uint64(rlimit.Cur))
		lf.Log.WithField("rlimit", rlimit.Cur).WithField("max_conns", maxConns).Debug("Limiting concurrent connections")
	}

	l, err := lf.NewUnixListener(network, laddr)
	if err != nil {
		return nil, err
	}
	return NewListener(l, lf.Log, maxConns), nil
}

// connLimitBelowRlimit leaves headroom under the open file limit for
// descriptors that are not connections.
func connLimitBelowRlimit(cur uint64) int64 {
	const rlimitPercent = 99

	if cur > math.MaxInt32 {
		cur = math.MaxInt32
	}
	limit := int64(cur * rlimitPercent / 100)
	if limit < 1 {
		limit = 1
	}
	return limit
}
