//go:build darwin || freebsd

package peerid

import (
	"os"

	"golang.org/x/sys/unix"
)

// The xucred record carries the peer's effective credentials but no PID, so
// the UID stands in as the resolved value.
const valueSource = SourceUserID

func peerIdentityFromFD(fd uintptr) (Identity, error) {
	xucred, err := unix.GetsockoptXucred(int(fd), unix.SOL_LOCAL, unix.LOCAL_PEERCRED)
	if err != nil {
		return None(), os.NewSyscallError("getsockopt", err)
	}
	return ValueOf(int32(xucred.Uid)), nil
}
