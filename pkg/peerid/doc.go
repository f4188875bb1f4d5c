// Package peerid resolves the identity of the process on the other end of a
// local-domain socket connection.
//
// Exactly one native backend is compiled in per target: SO_PEERCRED on
// Linux, LOCAL_PEERCRED on Darwin and FreeBSD, and SIO_AF_UNIX_GETPEERPID on
// Windows. The numeric value is a process ID everywhere except on the
// BSD-style backend, where the kernel only reports the peer's effective user
// ID. Callers that care must consult ValueSource rather than assume.
package peerid
