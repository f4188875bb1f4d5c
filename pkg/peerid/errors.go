package peerid

import "errors"

var (
	ErrInvalidConnection   = errors.New("invalid connection")
	ErrTruncatedCredential = errors.New("truncated peer credential")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
