package memory

import (
	"go.uber.org/zap"

	"github.com/wnxd/dsmem/emulator"
)

// RegisterWrite watches writes to [addr, addr+size). It replaces the
// callback previously registered for the same address and size; a nil
// callback removes it.
func (m *Memory) RegisterWrite(addr uint32, size uint16, callback emulator.MemoryCallback) {
	logWatch(emulator.WATCH_WRITE, addr, int(size), callback)
	m.engine.RegisterWrite(int(addr), int(size), callback)
}

// RegisterRead watches reads of [addr, addr+size), with the same replace
// and remove rules as RegisterWrite.
func (m *Memory) RegisterRead(addr uint32, size uint16, callback emulator.MemoryCallback) {
	logWatch(emulator.WATCH_READ, addr, int(size), callback)
	m.engine.RegisterRead(int(addr), int(size), callback)
}

// RegisterExec watches instruction fetches at addr.
func (m *Memory) RegisterExec(addr uint32, callback emulator.MemoryCallback) {
	logWatch(emulator.WATCH_EXEC, addr, emulator.EXEC_WATCH_SIZE, callback)
	m.engine.RegisterExec(int(addr), emulator.EXEC_WATCH_SIZE, callback)
}

func logWatch(kind emulator.WatchKind, addr uint32, size int, callback emulator.MemoryCallback) {
	msg := "watchpoint set"
	if callback == nil {
		msg = "watchpoint cleared"
	}
	Logger().Debug(msg,
		zap.Stringer("kind", kind),
		zap.Uint32("addr", addr),
		zap.Int("size", size))
}
