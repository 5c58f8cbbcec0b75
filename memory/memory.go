// Package memory exposes the address space of an emulator.Engine as typed,
// range-indexable buffers.
//
// A Memory hands out Readers and Writers for one element type each. Any
// number of Readers may be open at once, or exactly one Writer; the rule is
// checked when a handle is created and released by its Close method.
//
//	r, err := mem.U16()
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	words, err := r.ReadRange(memory.Range{Start: 0x2000000, End: 0x2000010})
package memory

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wnxd/dsmem/emulator"
)

const writerBorrow = -1

type Memory struct {
	engine emulator.Engine
	// >0 open readers, writerBorrow while a writer is open
	borrow atomic.Int32
}

func New(engine emulator.Engine) *Memory {
	return &Memory{engine: engine}
}

func (m *Memory) Engine() emulator.Engine {
	return m.engine
}

func (m *Memory) acquireRead() error {
	for {
		n := m.borrow.Load()
		if n == writerBorrow {
			Logger().Debug("reader refused", zap.String("reason", "writer open"))
			return fmt.Errorf("%w: writer open", ErrBorrowed)
		}
		if m.borrow.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

func (m *Memory) acquireWrite() error {
	if m.borrow.CompareAndSwap(0, writerBorrow) {
		return nil
	}
	n := m.borrow.Load()
	Logger().Debug("writer refused", zap.Int32("borrow", n))
	if n == writerBorrow {
		return fmt.Errorf("%w: writer open", ErrBorrowed)
	}
	return fmt.Errorf("%w: %d readers open", ErrBorrowed, n)
}

func (m *Memory) release(exclusive bool) {
	if exclusive {
		m.borrow.Store(0)
	} else {
		m.borrow.Add(-1)
	}
}

func (m *Memory) read(width, addr uint32) uint32 {
	switch width {
	case 1:
		return uint32(m.engine.Read8(addr))
	case 2:
		return uint32(m.engine.Read16(addr))
	}
	return m.engine.Read32(addr)
}

func (m *Memory) write(width, addr, value uint32) {
	switch width {
	case 1:
		m.engine.Write8(addr, uint8(value))
	case 2:
		m.engine.Write16(addr, uint16(value))
	default:
		m.engine.Write32(addr, value)
	}
}

func (m *Memory) readBytes(addr uint32, b []byte) {
	if bulk, ok := m.engine.(emulator.BulkReader); ok {
		bulk.ReadBytes(addr, b)
		return
	}
	for i := range b {
		b[i] = m.engine.Read8(addr + uint32(i))
	}
}

func NewReader[T Element](m *Memory) (*Reader[T], error) {
	if err := m.acquireRead(); err != nil {
		return nil, err
	}
	return &Reader[T]{view: newView[T](m, false)}, nil
}

func NewWriter[T Element](m *Memory) (*Writer[T], error) {
	if err := m.acquireWrite(); err != nil {
		return nil, err
	}
	return &Writer[T]{Reader[T]{view: newView[T](m, true)}}, nil
}

func (m *Memory) U8() (*Reader[uint8], error)   { return NewReader[uint8](m) }
func (m *Memory) U16() (*Reader[uint16], error) { return NewReader[uint16](m) }
func (m *Memory) U32() (*Reader[uint32], error) { return NewReader[uint32](m) }
func (m *Memory) I8() (*Reader[int8], error)    { return NewReader[int8](m) }
func (m *Memory) I16() (*Reader[int16], error)  { return NewReader[int16](m) }
func (m *Memory) I32() (*Reader[int32], error)  { return NewReader[int32](m) }

func (m *Memory) U8Mut() (*Writer[uint8], error)   { return NewWriter[uint8](m) }
func (m *Memory) U16Mut() (*Writer[uint16], error) { return NewWriter[uint16](m) }
func (m *Memory) U32Mut() (*Writer[uint32], error) { return NewWriter[uint32](m) }
func (m *Memory) I8Mut() (*Writer[int8], error)    { return NewWriter[int8](m) }
func (m *Memory) I16Mut() (*Writer[int16], error)  { return NewWriter[int16](m) }
func (m *Memory) I32Mut() (*Writer[int32], error)  { return NewWriter[int32](m) }
