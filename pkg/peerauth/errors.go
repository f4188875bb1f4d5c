package peerauth

import "errors"

var (
	ErrInvalidConnection    = errors.New("invalid connection")
	ErrUnsupportedTransport = errors.New("unsupported transport")
)
