package encoding

// Stream is a read cursor over memory that only exposes width-sized
// primitives (1, 2 or 4 bytes).
type Stream interface {
	Offset() uint32
	Skip(n int)
	Read(width int) uint32
}

type WriteStream interface {
	Stream
	Write(width int, value uint32)
}
