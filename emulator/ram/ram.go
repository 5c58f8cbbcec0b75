// Package ram provides an in-process emulator.Engine backed by a plain byte
// buffer. It stands in for a real emulation core in tests and tooling.
package ram

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	"github.com/wnxd/dsmem/emulator"
)

const DefaultSize = 4 << 20

type Option func(*Engine)

// Stats counts host-side primitive crossings.
type Stats struct {
	Read8, Read16, Read32    int
	Write8, Write16, Write32 int
	ReadBytes                int
}

type watchKey struct {
	kind       emulator.WatchKind
	addr, size int
}

type Engine struct {
	buf     Buffer
	bo      emulator.ByteOrder
	order   binary.ByteOrder
	regs    map[string]uint32
	next    uint32
	watches map[watchKey]emulator.MemoryCallback
	stats   Stats
}

var (
	_ emulator.Engine     = (*Engine)(nil)
	_ emulator.BulkReader = (*Engine)(nil)
)

func WithByteOrder(bo emulator.ByteOrder) Option {
	return func(e *Engine) {
		e.bo = bo
	}
}

func WithRegisters(regs map[string]uint32) Option {
	return func(e *Engine) {
		maps.Copy(e.regs, regs)
	}
}

func New(size uint32, opts ...Option) *Engine {
	if size == 0 {
		size = DefaultSize
	}
	e := &Engine{
		buf:     make(Buffer, size),
		bo:      emulator.BO_LITTLE_ENDIAN,
		regs:    make(map[string]uint32),
		watches: make(map[watchKey]emulator.MemoryCallback),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.order = e.bo.Binary()
	return e
}

func (e *Engine) Size() uint32 {
	return uint32(len(e.buf))
}

func (e *Engine) ByteOrder() emulator.ByteOrder {
	return e.bo
}

func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) ResetStats() {
	e.stats = Stats{}
}

func (e *Engine) Read8(addr uint32) uint8 {
	e.stats.Read8++
	return e.buf[e.buf.index(addr)]
}

func (e *Engine) Read16(addr uint32) uint16 {
	e.stats.Read16++
	var raw [2]byte
	e.buf.ReadAt(raw[:], int64(addr))
	return e.order.Uint16(raw[:])
}

func (e *Engine) Read32(addr uint32) uint32 {
	e.stats.Read32++
	var raw [4]byte
	e.buf.ReadAt(raw[:], int64(addr))
	return e.order.Uint32(raw[:])
}

func (e *Engine) ReadBytes(addr uint32, b []byte) {
	e.stats.ReadBytes++
	e.buf.ReadAt(b, int64(addr))
}

func (e *Engine) Write8(addr uint32, value uint8) {
	e.stats.Write8++
	e.buf[e.buf.index(addr)] = value
}

func (e *Engine) Write16(addr uint32, value uint16) {
	e.stats.Write16++
	var raw [2]byte
	e.order.PutUint16(raw[:], value)
	e.buf.WriteAt(raw[:], int64(addr))
}

func (e *Engine) Write32(addr uint32, value uint32) {
	e.stats.Write32++
	var raw [4]byte
	e.order.PutUint32(raw[:], value)
	e.buf.WriteAt(raw[:], int64(addr))
}

func (e *Engine) ReadRegister(token string) uint32 {
	return e.regs[token]
}

func (e *Engine) WriteRegister(token string, value uint32) {
	e.regs[token] = value
}

func (e *Engine) NextInstruction() uint32 {
	return e.next
}

func (e *Engine) SetNextInstruction(value uint32) {
	e.next = value
}

func (e *Engine) RegisterWrite(addr, size int, callback emulator.MemoryCallback) {
	e.register(emulator.WATCH_WRITE, addr, size, callback)
}

func (e *Engine) RegisterRead(addr, size int, callback emulator.MemoryCallback) {
	e.register(emulator.WATCH_READ, addr, size, callback)
}

func (e *Engine) RegisterExec(addr, size int, callback emulator.MemoryCallback) {
	e.register(emulator.WATCH_EXEC, addr, size, callback)
}

func (e *Engine) register(kind emulator.WatchKind, addr, size int, callback emulator.MemoryCallback) {
	key := watchKey{kind, addr, size}
	if callback == nil {
		delete(e.watches, key)
		return
	}
	e.watches[key] = callback
}

// Watching reports whether a callback is stored under the exact key.
func (e *Engine) Watching(kind emulator.WatchKind, addr, size int) bool {
	_, ok := e.watches[watchKey{kind, addr, size}]
	return ok
}

func checkSize(size int) {
	switch size {
	case 1, 2, 4:
		return
	}
	panic(fmt.Errorf("%w: got %d", ErrAccessSize, size))
}

// CPURead performs a guest-side load, firing read watchpoints that overlap
// [addr, addr+size). size must be 1, 2 or 4.
func (e *Engine) CPURead(addr uint32, size int) uint32 {
	checkSize(size)
	var raw [4]byte
	e.buf.ReadAt(raw[:size], int64(addr))
	e.fire(emulator.WATCH_READ, addr, size)
	switch size {
	case 1:
		return uint32(raw[0])
	case 2:
		return uint32(e.order.Uint16(raw[:]))
	}
	return e.order.Uint32(raw[:])
}

// CPUWrite performs a guest-side store and then fires overlapping write
// watchpoints.
func (e *Engine) CPUWrite(addr uint32, size int, value uint32) {
	checkSize(size)
	var raw [4]byte
	switch size {
	case 1:
		raw[0] = uint8(value)
	case 2:
		e.order.PutUint16(raw[:], uint16(value))
	case 4:
		e.order.PutUint32(raw[:], value)
	}
	e.buf.WriteAt(raw[:size], int64(addr))
	e.fire(emulator.WATCH_WRITE, addr, size)
}

// Exec simulates an instruction fetch at addr.
func (e *Engine) Exec(addr uint32) {
	e.next = addr
	e.fire(emulator.WATCH_EXEC, addr, 1)
}

func (e *Engine) fire(kind emulator.WatchKind, addr uint32, size int) {
	begin, end := int64(addr), int64(addr)+int64(size)
	var hits []watchKey
	for key := range e.watches {
		if key.kind != kind {
			continue
		}
		wb, we := int64(key.addr), int64(key.addr)+int64(key.size)
		if wb < end && begin < we {
			hits = append(hits, key)
		}
	}
	slices.SortFunc(hits, func(a, b watchKey) int {
		if c := cmp.Compare(a.addr, b.addr); c != 0 {
			return c
		}
		return cmp.Compare(a.size, b.size)
	})
	for _, key := range hits {
		if callback, ok := e.watches[key]; ok {
			callback(addr, size)
		}
	}
}
