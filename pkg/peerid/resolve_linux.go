//go:build linux

package peerid

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const valueSource = SourceProcessID

// getsockopt is the raw option query, swappable in tests. It returns the
// option length written by the kernel.
var getsockopt = rawGetsockopt

func rawGetsockopt(fd uintptr, level, name int, val unsafe.Pointer, vallen uint32) (uint32, error) {
	n := vallen
	_, _, errno := unix.Syscall6(unix.SYS_GETSOCKOPT, fd, uintptr(level), uintptr(name),
		uintptr(val), uintptr(unsafe.Pointer(&n)), 0)
	if errno != 0 {
		return n, errno
	}
	return n, nil
}

func peerIdentityFromFD(fd uintptr) (Identity, error) {
	var ucred unix.Ucred
	want := uint32(unsafe.Sizeof(ucred))

	got, err := getsockopt(fd, unix.SOL_SOCKET, unix.SO_PEERCRED, unsafe.Pointer(&ucred), want)
	if err != nil {
		return None(), os.NewSyscallError("getsockopt", err)
	}
	// A short record leaves the pid field unset or partially set.
	if got != want {
		return None(), os.NewSyscallError("getsockopt",
			fmt.Errorf("%w: got %d bytes, want %d", ErrTruncatedCredential, got, want))
	}

	return ValueOf(ucred.Pid), nil
}
