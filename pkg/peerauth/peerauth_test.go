//go:build linux || darwin || freebsd

package peerauth

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cofide/peerid/pkg/peerid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const acceptTimeout = 5 * time.Second

func socketAddr(t *testing.T) *net.UnixAddr {
	return &net.UnixAddr{
		Net:  "unix",
		Name: filepath.Join(t.TempDir(), "test.sock"),
	}
}

func expectedSelf() peerid.Identity {
	if peerid.ValueSource() == peerid.SourceUserID {
		return peerid.ValueOf(int32(os.Geteuid()))
	}
	return peerid.ValueOf(int32(os.Getpid()))
}

func newTestListener(t *testing.T, maxConns int64) (*Listener, *net.UnixAddr, *test.Hook) {
	log, hook := test.NewNullLogger()
	addr := socketAddr(t)

	l, err := (&ListenerFactory{Log: log, MaxConns: maxConns}).ListenUnix(addr.Network(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	return l, addr, hook
}

// dialUnix connects to addr and closes the client end when the test ends.
func dialUnix(t *testing.T, addr *net.UnixAddr) *net.UnixConn {
	conn, err := net.DialUnix("unix", nil, addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type acceptResult struct {
	conn net.Conn
	err  error
}

// acceptAsync runs Accept in the background so a dropped connection shows
// up as a timeout instead of a hung test.
func acceptAsync(l net.Listener) <-chan acceptResult {
	ch := make(chan acceptResult, 1)
	go func() {
		conn, err := l.Accept()
		ch <- acceptResult{conn: conn, err: err}
	}()
	return ch
}

func waitAccept(t *testing.T, ch <-chan acceptResult) *Conn {
	select {
	case res := <-ch:
		require.NoError(t, res.err)
		conn, ok := res.conn.(*Conn)
		require.True(t, ok, "accepted %T", res.conn)
		t.Cleanup(func() { conn.Close() })
		return conn
	case <-time.After(acceptTimeout):
		require.FailNow(t, "Accept did not return a connection")
		return nil
	}
}
