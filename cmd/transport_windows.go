//go:build windows

package main

import (
	"context"
	"net"
	"strings"

	"github.com/Microsoft/go-winio"
	"github.com/cofide/peerid/pkg/peerauth"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

const (
	defaultSocketPath = `\\.\pipe\peerid`
	pipePrefix        = `\\.\pipe\`
)

func listen(path string, log logrus.FieldLogger) (net.Listener, error) {
	if strings.HasPrefix(path, pipePrefix) {
		l, err := (&peerauth.ListenerFactory{Log: log}).ListenPipe(path, nil)
		if err != nil {
			return nil, err
		}
		return l, nil
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	return peerauth.NewListener(l, log, 0), nil
}

func dialTarget(path string) (string, []grpc.DialOption) {
	if !strings.HasPrefix(path, pipePrefix) {
		return "unix:" + path, nil
	}

	return "passthrough:///peerid", []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return winio.DialPipeContext(ctx, path)
		}),
	}
}
