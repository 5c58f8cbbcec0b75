package emulator

import "encoding/binary"

type ByteOrder int

const (
	BO_LITTLE_ENDIAN ByteOrder = iota
	BO_BIG_ENDIAN
)

func (bo ByteOrder) Binary() binary.ByteOrder {
	if bo == BO_BIG_ENDIAN {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

type WatchKind int

const (
	WATCH_WRITE WatchKind = iota
	WATCH_READ
	WATCH_EXEC
)

// EXEC_WATCH_SIZE is the fetch window used for every exec registration.
const EXEC_WATCH_SIZE = 2

func (k WatchKind) String() string {
	switch k {
	case WATCH_WRITE:
		return "write"
	case WATCH_READ:
		return "read"
	case WATCH_EXEC:
		return "exec"
	}
	return "unknown"
}

// MemoryCallback is invoked by the engine with the accessed address and the
// access size in bytes.
type MemoryCallback = func(addr uint32, size int) bool
