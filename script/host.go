// Package script runs Lua scripts against emulator memory through a global
// `memory` table modelled on the DeSmuME Lua API.
//
//	local hp = memory.readword(0x02100000)
//	memory.registerwrite(0x02100000, 2, function(addr, size)
//		print(string.format("hp changed at %x", addr))
//	end)
package script

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/wnxd/dsmem/emulator"
	"github.com/wnxd/dsmem/memory"
)

type Host struct {
	L   *lua.LState
	mem *memory.Memory
}

func New(mem *memory.Memory) *Host {
	h := &Host{
		L:   lua.NewState(),
		mem: mem,
	}
	tbl := h.L.NewTable()
	h.L.SetFuncs(tbl, map[string]lua.LGFunction{
		"readbyte":           readFunc[uint8](h),
		"readbytesigned":     readFunc[int8](h),
		"readword":           readFunc[uint16](h),
		"readwordsigned":     readFunc[int16](h),
		"readdword":          readFunc[uint32](h),
		"readdwordsigned":    readFunc[int32](h),
		"readbyterange":      h.readByteRange,
		"writebyte":          writeFunc[uint8](h),
		"writeword":          writeFunc[uint16](h),
		"writedword":         writeFunc[uint32](h),
		"getregister":        h.getRegister,
		"setregister":        h.setRegister,
		"getnextinstruction": h.getNextInstruction,
		"setnextinstruction": h.setNextInstruction,
		"registerwrite":      h.registerWrite,
		"registerread":       h.registerRead,
		"registerexec":       h.registerExec,
	})
	h.L.SetGlobal("memory", tbl)
	return h
}

func (h *Host) DoString(src string) error {
	return h.L.DoString(src)
}

func (h *Host) DoFile(path string) error {
	return h.L.DoFile(path)
}

func (h *Host) Close() {
	h.L.Close()
}

func checkAddr(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func readFunc[T memory.Element](h *Host) lua.LGFunction {
	return func(L *lua.LState) int {
		addr := checkAddr(L, 1)
		r, err := memory.NewReader[T](h.mem)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		defer r.Close()
		L.Push(lua.LNumber(r.ReadOne(addr)))
		return 1
	}
}

func writeFunc[T memory.Element](h *Host) lua.LGFunction {
	return func(L *lua.LState) int {
		addr := checkAddr(L, 1)
		value := T(int64(L.CheckNumber(2)))
		w, err := memory.NewWriter[T](h.mem)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		defer w.Close()
		w.WriteOne(addr, value)
		return 0
	}
}

func (h *Host) readByteRange(L *lua.LState) int {
	addr := checkAddr(L, 1)
	n := L.CheckInt(2)
	if n < 0 {
		L.ArgError(2, "length must not be negative")
		return 0
	}
	r, err := h.mem.U8()
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	defer r.Close()
	values, err := r.ReadRange(memory.Span(addr, uint32(n)))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	tbl := L.CreateTable(len(values), 0)
	for _, v := range values {
		tbl.Append(lua.LNumber(v))
	}
	L.Push(tbl)
	return 1
}

func checkRegister(L *lua.LState, n int) (emulator.Processor, emulator.Register) {
	p, reg, err := emulator.ParseToken(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return p, reg
}

func (h *Host) getRegister(L *lua.LState) int {
	p, reg := checkRegister(L, 1)
	L.Push(lua.LNumber(h.mem.GetReg(p, reg)))
	return 1
}

func (h *Host) setRegister(L *lua.LState) int {
	p, reg := checkRegister(L, 1)
	h.mem.SetReg(p, reg, checkAddr(L, 2))
	return 0
}

func (h *Host) getNextInstruction(L *lua.LState) int {
	L.Push(lua.LNumber(h.mem.NextInstruction()))
	return 1
}

func (h *Host) setNextInstruction(L *lua.LState) int {
	h.mem.SetNextInstruction(checkAddr(L, 1))
	return 0
}

// watchArgs parses (addr, [size,] fn|nil). size defaults to 1.
func watchArgs(L *lua.LState) (uint32, uint16, *lua.LFunction) {
	addr := checkAddr(L, 1)
	size, fnArg := uint16(1), 2
	if L.Get(2).Type() == lua.LTNumber {
		n := L.CheckInt(2)
		if n < 1 || n > 0xFFFF {
			L.ArgError(2, "size out of range 1..65535")
		}
		size, fnArg = uint16(n), 3
	}
	return addr, size, checkCallback(L, fnArg)
}

func checkCallback(L *lua.LState, n int) *lua.LFunction {
	switch v := L.Get(n).(type) {
	case *lua.LFunction:
		return v
	case *lua.LNilType:
		return nil
	}
	L.ArgError(n, "function or nil expected")
	return nil
}

func (h *Host) registerWrite(L *lua.LState) int {
	addr, size, fn := watchArgs(L)
	h.mem.RegisterWrite(addr, size, h.callback(fn))
	return 0
}

func (h *Host) registerRead(L *lua.LState) int {
	addr, size, fn := watchArgs(L)
	h.mem.RegisterRead(addr, size, h.callback(fn))
	return 0
}

func (h *Host) registerExec(L *lua.LState) int {
	h.mem.RegisterExec(checkAddr(L, 1), h.callback(checkCallback(L, 2)))
	return 0
}

// callback adapts a Lua function to the engine's callback type. The engine
// owns the returned closure; a nil function yields a nil callback so the
// registration removes the watchpoint.
func (h *Host) callback(fn *lua.LFunction) emulator.MemoryCallback {
	if fn == nil {
		return nil
	}
	return func(addr uint32, size int) bool {
		err := h.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(addr), lua.LNumber(size))
		if err != nil {
			Logger().Warn("watch callback failed", zap.Uint32("addr", addr), zap.Int("size", size), zap.Error(err))
			return false
		}
		ret := h.L.Get(-1)
		h.L.Pop(1)
		return lua.LVAsBool(ret)
	}
}
