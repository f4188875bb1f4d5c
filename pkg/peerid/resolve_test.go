//go:build linux || darwin || freebsd

package peerid

import (
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedSelfIdentity is what resolving a connection dialed by this test
// process must return.
func expectedSelfIdentity() Identity {
	if ValueSource() == SourceUserID {
		return ValueOf(int32(os.Geteuid()))
	}
	return ValueOf(int32(os.Getpid()))
}

func listenUnix(t *testing.T) *net.UnixListener {
	t.Helper()
	addr := &net.UnixAddr{
		Net:  "unix",
		Name: filepath.Join(t.TempDir(), "peerid.sock"),
	}
	l, err := net.ListenUnix("unix", addr)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

// connPair returns the client and accepted server ends of a unix socket
// connection made by this process.
func connPair(t *testing.T, l *net.UnixListener) (client, server *net.UnixConn) {
	t.Helper()

	errCh := make(chan error, 1)
	go func() {
		c, err := net.DialUnix("unix", nil, l.Addr().(*net.UnixAddr))
		client = c
		errCh <- err
	}()

	server, err := l.AcceptUnix()
	require.NoError(t, err)
	require.NoError(t, <-errCh)

	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func TestResolvePeerIdentity(t *testing.T) {
	client, server := connPair(t, listenUnix(t))

	id, err := ResolvePeerIdentity(server)
	require.NoError(t, err)
	assert.Equal(t, KindValue, id.Kind())
	assert.Equal(t, expectedSelfIdentity(), id)

	// Both ends belong to this process.
	id, err = ResolvePeerIdentity(client)
	require.NoError(t, err)
	assert.Equal(t, expectedSelfIdentity(), id)
}

func TestResolvePeerIdentityIsStable(t *testing.T) {
	_, server := connPair(t, listenUnix(t))

	first, err := ResolvePeerIdentity(server)
	require.NoError(t, err)
	second, err := ResolvePeerIdentity(server)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolvePeerIdentityLeavesConnOpen(t *testing.T) {
	client, server := connPair(t, listenUnix(t))

	_, err := ResolvePeerIdentity(server)
	require.NoError(t, err)

	_, err = client.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = server.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))
}

func TestResolvePeerIdentityClosedConn(t *testing.T) {
	_, server := connPair(t, listenUnix(t))
	require.NoError(t, server.Close())

	id, err := ResolvePeerIdentity(server)
	require.Error(t, err)
	assert.Equal(t, None(), id)
}

func TestResolvePeerIdentityNilConn(t *testing.T) {
	_, err := ResolvePeerIdentity(nil)
	require.ErrorIs(t, err, ErrInvalidConnection)
}

func TestResolvePeerIdentityConcurrent(t *testing.T) {
	l := listenUnix(t)

	const conns = 8
	servers := make([]*net.UnixConn, 0, conns)
	for range conns {
		_, server := connPair(t, l)
		servers = append(servers, server)
	}

	var wg sync.WaitGroup
	results := make([]Identity, conns)
	errs := make([]error, conns)
	for i, server := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = ResolvePeerIdentity(server)
		}()
	}
	wg.Wait()

	for i := range servers {
		require.NoError(t, errs[i])
		assert.Equal(t, expectedSelfIdentity(), results[i])
	}
}
