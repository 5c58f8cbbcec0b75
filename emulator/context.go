package emulator

type RegisterContext interface {
	ReadRegister(token string) uint32
	WriteRegister(token string, value uint32)
	NextInstruction() uint32
	SetNextInstruction(value uint32)
}

// WatchContext registers memory callbacks inside the engine. A nil callback
// removes the entry stored under the same key, a non-nil one replaces it.
type WatchContext interface {
	RegisterWrite(addr, size int, callback MemoryCallback)
	RegisterRead(addr, size int, callback MemoryCallback)
	RegisterExec(addr, size int, callback MemoryCallback)
}
