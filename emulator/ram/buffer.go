package ram

// Buffer is a fixed-size backing store whose offsets wrap around its length,
// the way the DS mirrors main RAM across its address window.
type Buffer []byte

func (buf Buffer) index(addr uint32) int {
	return int(addr % uint32(len(buf)))
}

func (buf Buffer) ReadAt(b []byte, off int64) (n int, err error) {
	addr := uint32(off)
	for i := range b {
		b[i] = buf[buf.index(addr+uint32(i))]
	}
	return len(b), nil
}

func (buf Buffer) WriteAt(b []byte, off int64) (n int, err error) {
	addr := uint32(off)
	for i := range b {
		buf[buf.index(addr+uint32(i))] = b[i]
	}
	return len(b), nil
}
