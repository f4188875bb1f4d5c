package peerauth

import (
	"context"
	"net"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/peer"
)

type grpcCredentials struct{}

// NewCredentials returns server-side transport credentials that resolve the
// caller of each connection. Connections accepted by Listener reuse the
// information resolved at accept time.
func NewCredentials() credentials.TransportCredentials {
	return &grpcCredentials{}
}

func (c *grpcCredentials) ClientHandshake(_ context.Context, _ string, conn net.Conn) (net.Conn, credentials.AuthInfo, error) {
	conn.Close()
	return conn, AuthInfo{}, ErrInvalidConnection
}

func (c *grpcCredentials) ServerHandshake(conn net.Conn) (net.Conn, credentials.AuthInfo, error) {
	if wrappedConn, ok := conn.(*Conn); ok {
		return wrappedConn, wrappedConn.Info, nil
	}

	if _, ok := conn.(*net.UnixConn); !ok {
		conn.Close()
		return conn, AuthInfo{}, ErrInvalidConnection
	}

	caller, err := CallerFromConn(conn)
	if err != nil {
		conn.Close()
		return conn, AuthInfo{}, err
	}

	return conn, AuthInfo{Caller: caller}, nil
}

func (c *grpcCredentials) Info() credentials.ProtocolInfo {
	return credentials.ProtocolInfo{
		SecurityProtocol: authType,
		SecurityVersion:  "0.1",
		ServerName:       "peerid",
	}
}

func (c *grpcCredentials) Clone() credentials.TransportCredentials {
	credentialsCopy := *c
	return &credentialsCopy
}

func (c *grpcCredentials) OverrideServerName(_ string) error {
	return nil
}

func CallerFromContext(ctx context.Context) (CallerInfo, bool) {
	ai, ok := AuthInfoFromContext(ctx)
	if !ok {
		return CallerInfo{}, false
	}

	return ai.Caller, true
}

func AuthInfoFromContext(ctx context.Context) (AuthInfo, bool) {
	peer, ok := peer.FromContext(ctx)
	if !ok {
		return AuthInfo{}, false
	}

	ai, ok := peer.AuthInfo.(AuthInfo)
	return ai, ok
}
