package memory

import "github.com/wnxd/dsmem/emulator"

func (m *Memory) GetReg(p emulator.Processor, reg emulator.Register) uint32 {
	return m.engine.ReadRegister(emulator.Token(p, reg))
}

func (m *Memory) SetReg(p emulator.Processor, reg emulator.Register, value uint32) {
	m.engine.WriteRegister(emulator.Token(p, reg), value)
}

// NextInstruction returns the address the engine will execute next. Engines
// may track it apart from the PC register.
func (m *Memory) NextInstruction() uint32 {
	return m.engine.NextInstruction()
}

func (m *Memory) SetNextInstruction(value uint32) {
	m.engine.SetNextInstruction(value)
}
