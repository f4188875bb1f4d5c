package peerid

import (
	"fmt"
	"strconv"
)

type Kind uint8

const (
	KindNone Kind = iota
	KindAny
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAny:
		return "any"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Identity is the identity of a socket peer. The zero value is None.
//
// None and Any are sentinels for callers; a resolver only ever returns a
// Value.
type Identity struct {
	kind  Kind
	value int32
}

// None returns the identity that matches no peer.
func None() Identity {
	return Identity{}
}

// Any returns the identity that stands for every peer.
func Any() Identity {
	return Identity{kind: KindAny}
}

// ValueOf returns the identity holding n. n is not validated.
func ValueOf(n int32) Identity {
	return Identity{kind: KindValue, value: n}
}

func (id Identity) Kind() Kind {
	return id.kind
}

// Int32 returns the numeric identifier and true if id is a Value.
func (id Identity) Int32() (int32, bool) {
	if id.kind != KindValue {
		return 0, false
	}
	return id.value, true
}

func (id Identity) String() string {
	switch id.kind {
	case KindAny:
		return "any"
	case KindValue:
		return strconv.FormatInt(int64(id.value), 10)
	default:
		return "none"
	}
}

// ParseIdentity is the inverse of Identity.String.
func ParseIdentity(s string) (Identity, error) {
	switch s {
	case "none":
		return None(), nil
	case "any":
		return Any(), nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return None(), fmt.Errorf("invalid peer identity %q: expected \"none\", \"any\" or a 32-bit integer", s)
	}
	return ValueOf(int32(n)), nil
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
