//go:build windows

package peerid

import (
	"net"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetNamedPipeClientProcessID = kernel32.NewProc("GetNamedPipeClientProcessId")
)

// ResolveNamedPipeIdentity returns the client PID of a server-side named
// pipe connection, such as one accepted from a go-winio pipe listener.
func ResolveNamedPipeIdentity(conn net.Conn) (Identity, error) {
	type fder interface {
		Fd() uintptr
	}
	f, ok := conn.(fder)
	if !ok {
		return None(), ErrInvalidConnection
	}

	var pid uint32
	r1, _, e1 := syscall.SyscallN(procGetNamedPipeClientProcessID.Addr(), f.Fd(), uintptr(unsafe.Pointer(&pid)))
	if r1 == 0 {
		return None(), os.NewSyscallError("GetNamedPipeClientProcessId", e1)
	}
	return ValueOf(int32(pid)), nil
}
