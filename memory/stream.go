package memory

import "github.com/wnxd/dsmem/encoding"

type readStream struct {
	v    *view
	addr uint32
}

type writeStream struct {
	readStream
}

var _ encoding.WriteStream = (*writeStream)(nil)

func (s *readStream) Offset() uint32 {
	return s.addr
}

func (s *readStream) Skip(n int) {
	s.addr += uint32(n)
}

func (s *readStream) Read(width int) uint32 {
	s.v.live()
	value := s.v.mem.read(uint32(width), s.addr)
	s.Skip(width)
	return value
}

func (s *writeStream) Write(width int, value uint32) {
	s.v.live()
	s.v.mem.write(uint32(width), s.addr, value)
	s.Skip(width)
}
