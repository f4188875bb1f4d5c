//go:build windows

package peerauth

import (
	"net"

	"github.com/Microsoft/go-winio"
)

type ListenerFactoryOS struct {
	NewPipeListener func(pipe string, pipeConfig *winio.PipeConfig) (net.Listener, error)
}

func (lf *ListenerFactory) ListenPipe(pipe string, pipeConfig *winio.PipeConfig) (*Listener, error) {
	if lf.NewPipeListener == nil {
		lf.NewPipeListener = winio.ListenPipe
	}
	if lf.Log == nil {
		lf.Log = newNoopLogger()
	}

	l, err := lf.NewPipeListener(pipe, pipeConfig)
	if err != nil {
		return nil, err
	}
	return NewListener(l, lf.Log, lf.MaxConns), nil
}
