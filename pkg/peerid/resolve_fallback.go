//go:build !linux && !darwin && !freebsd && !windows

package peerid

const valueSource = SourceUnknown

func peerIdentityFromFD(uintptr) (Identity, error) {
	return None(), ErrUnsupportedPlatform
}
