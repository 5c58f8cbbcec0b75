package emulator

import (
	"strconv"
	"strings"
)

type Processor int

const (
	PROCESSOR_ARM9 Processor = iota
	PROCESSOR_ARM7
)

type Register int

const (
	REG_R0 Register = iota
	REG_R1
	REG_R2
	REG_R3
	REG_R4
	REG_R5
	REG_R6
	REG_R7
	REG_R8
	REG_R9
	REG_R10
	REG_R11
	REG_R12
	REG_R13
	REG_R14
	REG_R15
	REG_CPSR
	REG_SPSR

	REG_SP // r13
	REG_LR // r14
	REG_PC // r15
)

var processorNames = [...]string{
	PROCESSOR_ARM9: "arm9",
	PROCESSOR_ARM7: "arm7",
}

var registerNames = [...]string{
	REG_R0:   "r0",
	REG_R1:   "r1",
	REG_R2:   "r2",
	REG_R3:   "r3",
	REG_R4:   "r4",
	REG_R5:   "r5",
	REG_R6:   "r6",
	REG_R7:   "r7",
	REG_R8:   "r8",
	REG_R9:   "r9",
	REG_R10:  "r10",
	REG_R11:  "r11",
	REG_R12:  "r12",
	REG_R13:  "r13",
	REG_R14:  "r14",
	REG_R15:  "r15",
	REG_CPSR: "cpsr",
	REG_SPSR: "spsr",
	REG_SP:   "r13",
	REG_LR:   "r14",
	REG_PC:   "r15",
}

func (p Processor) String() string {
	if p >= 0 && int(p) < len(processorNames) {
		return processorNames[p]
	}
	return "processor(" + strconv.Itoa(int(p)) + ")"
}

func (r Register) String() string {
	if r >= 0 && int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "reg(" + strconv.Itoa(int(r)) + ")"
}

// Token returns the lookup key the engine uses for a register, e.g. "arm9.r0".
// Values outside the enums produce a token no engine knows; what the engine
// does with it is not checked here.
func Token(p Processor, r Register) string {
	return p.String() + "." + r.String()
}

// ParseToken resolves a "<processor>.<register>" token, accepting the
// sp/lr/pc aliases. The returned register is always the canonical one.
func ParseToken(token string) (Processor, Register, error) {
	proc, reg, _ := strings.Cut(strings.ToLower(token), ".")
	p := Processor(-1)
	for i, name := range processorNames {
		if name == proc {
			p = Processor(i)
			break
		}
	}
	if p < 0 {
		return 0, 0, ErrProcessorUnknown
	}
	switch reg {
	case "sp":
		return p, REG_R13, nil
	case "lr":
		return p, REG_R14, nil
	case "pc":
		return p, REG_R15, nil
	}
	for i, name := range registerNames[:REG_SP] {
		if name == reg {
			return p, Register(i), nil
		}
	}
	return 0, 0, ErrRegisterUnknown
}
