//go:build windows

package peerid

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

const valueSource = SourceProcessID

// sioAFUnixGetPeerPID is SIO_AF_UNIX_GETPEERPID from afunix.h.
const sioAFUnixGetPeerPID = 0x58000100

func peerIdentityFromFD(fd uintptr) (Identity, error) {
	var (
		pid      uint32
		returned uint32
	)
	err := windows.WSAIoctl(windows.Handle(fd), sioAFUnixGetPeerPID,
		nil, 0,
		(*byte)(unsafe.Pointer(&pid)), uint32(unsafe.Sizeof(pid)),
		&returned, nil, 0)
	if err != nil {
		return None(), os.NewSyscallError("WSAIoctl", err)
	}
	return ValueOf(int32(pid)), nil
}
