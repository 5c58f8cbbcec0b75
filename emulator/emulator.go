package emulator

type MemoryEngine interface {
	ByteOrder() ByteOrder
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, value uint8)
	Write16(addr uint32, value uint16)
	Write32(addr uint32, value uint32)
}

// BulkReader is implemented by engines that can copy a run of bytes in a
// single crossing. It is only used for 8-bit element walks.
type BulkReader interface {
	ReadBytes(addr uint32, b []byte)
}

type Engine interface {
	MemoryEngine
	RegisterContext
	WatchContext
}
