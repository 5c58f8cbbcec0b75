package memory

import (
	"bytes"

	"github.com/wnxd/dsmem/encoding"
)

// maxString bounds ReadString on engines that mirror memory without a NUL.
const maxString = 1 << 16

// Pointer is a read cursor into foreign memory, valid while the handle that
// created it is open.
type Pointer struct {
	v    *view
	addr uint32
}

func (p Pointer) IsNil() bool {
	return p.addr == 0
}

func (p Pointer) Address() uint32 {
	return p.addr
}

func (p Pointer) Add(offset uint32) Pointer {
	return Pointer{p.v, p.addr + offset}
}

func (p Pointer) Sub(offset uint32) Pointer {
	return Pointer{p.v, p.addr - offset}
}

func (p Pointer) ReadAt(b []byte, off int64) (n int, err error) {
	p.v.live()
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	p.v.mem.readBytes(p.addr+uint32(off), b)
	return len(b), nil
}

// ReadString reads a NUL-terminated string, one 16-byte aligned chunk at a
// time.
func (p Pointer) ReadString() string {
	p.v.live()
	var data []byte
	var buf [0x10]byte
	for addr := p.addr; len(data) < maxString; {
		end := Align(addr+1, uint32(len(buf)))
		chunk := buf[:end-addr]
		p.v.mem.readBytes(addr, chunk)
		if i := bytes.IndexByte(chunk, 0); i != -1 {
			return string(append(data, chunk[:i]...))
		}
		data = append(data, chunk...)
		addr = end
	}
	return string(data)
}

// ReadPointer dereferences the 32-bit address stored at p.
func (p Pointer) ReadPointer() Pointer {
	p.v.live()
	return Pointer{p.v, p.v.mem.engine.Read32(p.addr)}
}

// Extract decodes a struct or array of fixed-width integers stored at p into
// the value val points to.
func (p Pointer) Extract(val any) error {
	p.v.live()
	return encoding.Decode(&readStream{p.v, p.addr}, val)
}
