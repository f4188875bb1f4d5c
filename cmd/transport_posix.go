//go:build !windows

package main

import (
	"errors"
	"io/fs"
	"net"
	"os"

	"github.com/cofide/peerid/pkg/peerauth"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

const defaultSocketPath = "/tmp/peerid.sock"

func listen(path string, log logrus.FieldLogger) (net.Listener, error) {
	// Remove a socket left behind by a previous run
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	addr := &net.UnixAddr{Net: "unix", Name: path}
	l, err := (&peerauth.ListenerFactory{Log: log}).ListenUnix(addr.Network(), addr)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func dialTarget(path string) (string, []grpc.DialOption) {
	return "unix://" + path, nil
}
