package peerauth

import (
	"net"
	"path/filepath"
	"syscall"

	"github.com/cofide/peerid/pkg/peerid"
	"github.com/shirou/gopsutil/v3/process"
)

// CallerFromConn resolves the caller on the other end of a unix socket
// connection.
func CallerFromConn(conn net.Conn) (CallerInfo, error) {
	sysconn, ok := conn.(syscall.Conn)
	if !ok {
		return CallerInfo{}, ErrInvalidConnection
	}

	id, err := peerid.ResolvePeerIdentity(sysconn)
	if err != nil {
		return CallerInfo{}, err
	}

	return newCallerInfo(conn.RemoteAddr(), id, peerid.ValueSource()), nil
}

// CallerFromNamedPipeConn resolves the client of a named pipe connection.
func CallerFromNamedPipeConn(conn net.Conn) (CallerInfo, error) {
	id, err := peerid.ResolveNamedPipeIdentity(conn)
	if err != nil {
		return CallerInfo{}, err
	}

	return newCallerInfo(conn.RemoteAddr(), id, peerid.SourceProcessID), nil
}

func newCallerInfo(addr net.Addr, id peerid.Identity, source peerid.Source) CallerInfo {
	info := CallerInfo{
		Addr:     addr,
		Identity: id,
		Source:   source,
	}
	if pid, ok := info.PID(); ok {
		info.BinaryName = binaryName(pid)
	}
	return info
}

// binaryName is swappable in tests.
var binaryName = resolveBinaryName

func resolveBinaryName(pid int32) string {
	proc, err := process.NewProcess(pid)
	if err != nil {
		// Process likely exited between accept and lookup
		return ""
	}

	exePath, err := proc.Exe()
	if err != nil {
		// Permission denied or zombie process
		return ""
	}

	return filepath.Base(exePath)
}
