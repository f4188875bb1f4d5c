package peerid

// Source describes what a resolved Value means on the running platform.
type Source uint8

const (
	SourceUnknown Source = iota
	SourceProcessID
	SourceUserID
)

func (s Source) String() string {
	switch s {
	case SourceProcessID:
		return "pid"
	case SourceUserID:
		return "uid"
	default:
		return "unknown"
	}
}

// ValueSource reports what ResolvePeerIdentity returns on this platform.
func ValueSource() Source {
	return valueSource
}
