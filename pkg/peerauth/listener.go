package peerauth

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var _ net.Listener = &Listener{}

type ListenerFactory struct {
	Log logrus.FieldLogger
	// MaxConns bounds the connections open at once. Zero derives the bound
	// from the platform's file descriptor limit where there is one.
	MaxConns          int64
	ListenerFactoryOS // OS specific
}

// Listener resolves the caller of every accepted connection. Connections
// whose caller cannot be resolved are logged and closed, and Accept moves on
// to the next one.
//
// The caller is resolved on the connection exactly as the inner listener
// returned it, so the returned *Conn still exposes the raw socket.
type Listener struct {
	l   net.Listener
	log logrus.FieldLogger

	// sem is nil when connections are unbounded.
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
}

// NewListener wraps an existing listener. A nil log discards output and a
// maxConns of zero or less leaves connections unbounded.
func NewListener(l net.Listener, log logrus.FieldLogger, maxConns int64) *Listener {
	if log == nil {
		log = newNoopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	listener := &Listener{
		l:      l,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	if maxConns > 0 {
		listener.sem = semaphore.NewWeighted(maxConns)
	}
	return listener
}

func newNoopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func (l *Listener) Accept() (net.Conn, error) {
	for {
		release, err := l.acquire()
		if err != nil {
			return nil, err
		}

		conn, err := l.l.Accept()
		if err != nil {
			release()
			return nil, err
		}

		caller, err := callerFromAcceptedConn(conn)
		if err != nil {
			l.log.WithError(err).Warn("Connection failed during accept")
			conn.Close()
			release()
			continue
		}

		l.log.WithFields(logrus.Fields{
			"peer":   caller.Identity,
			"source": caller.Source,
			"binary": caller.BinaryName,
		}).Debug("Accepted connection")

		return &Conn{
			Conn:    conn,
			Info:    AuthInfo{Caller: caller},
			release: release,
		}, nil
	}
}

// acquire reserves a connection slot. The returned func gives it back and is
// safe to call more than once.
func (l *Listener) acquire() (func(), error) {
	if l.sem == nil {
		return func() {}, nil
	}
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		return nil, net.ErrClosed
	}
	var once sync.Once
	return func() {
		once.Do(func() { l.sem.Release(1) })
	}, nil
}

func callerFromAcceptedConn(conn net.Conn) (CallerInfo, error) {
	if _, ok := conn.(*net.UnixConn); ok {
		return CallerFromConn(conn)
	}

	addr := conn.RemoteAddr()
	if addr == nil {
		return CallerInfo{}, ErrUnsupportedTransport
	}
	switch addr.Network() {
	case "unix":
		return CallerFromConn(conn)
	case "pipe":
		return CallerFromNamedPipeConn(conn)
	default:
		return CallerInfo{}, ErrUnsupportedTransport
	}
}

// Close stops the listener and unblocks an Accept waiting for a free slot.
// Connections already returned stay open.
func (l *Listener) Close() error {
	l.cancel()
	return l.l.Close()
}

func (l *Listener) Addr() net.Addr {
	return l.l.Addr()
}
