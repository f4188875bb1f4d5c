// Package peerauth attaches the resolved identity of a local socket caller to
// accepted connections and to gRPC requests.
//
// Connections accepted through Listener are returned as *Conn values carrying
// the caller information. The gRPC credentials returned by NewCredentials
// surface the same information to handlers through AuthInfoFromContext and
// CallerFromContext.
package peerauth
