package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	lua "github.com/yuin/gopher-lua"

	"github.com/wnxd/dsmem/emulator"
	"github.com/wnxd/dsmem/emulator/ram"
	"github.com/wnxd/dsmem/memory"
)

func newHost(t *testing.T) (*Host, *ram.Engine) {
	t.Helper()
	e := ram.New(0x10000)
	h := New(memory.New(e))
	t.Cleanup(h.Close)
	return h, e
}

func global(t *testing.T, h *Host, name string) lua.LValue {
	t.Helper()
	return h.L.GetGlobal(name)
}

func TestReadWrite(t *testing.T) {
	h, e := newHost(t)
	e.Write8(0x10, 0xFF)
	e.Write16(0x20, 0x8001)
	e.Write32(0x30, 0xFFFFFFFE)

	err := h.DoString(`
		u8 = memory.readbyte(0x10)
		i8 = memory.readbytesigned(0x10)
		u16 = memory.readword(0x20)
		i16 = memory.readwordsigned(0x20)
		u32 = memory.readdword(0x30)
		i32 = memory.readdwordsigned(0x30)
		memory.writebyte(0x40, 0x7F)
		memory.writeword(0x42, 0xBEEF)
		memory.writedword(0x44, 0x12345678)
	`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	want := map[string]lua.LNumber{
		"u8": 255, "i8": -1,
		"u16": 0x8001, "i16": -32767,
		"u32": 0xFFFFFFFE, "i32": -2,
	}
	for name, v := range want {
		if got := global(t, h, name); got != v {
			t.Errorf("%s = %v, want %v", name, got, v)
		}
	}
	if e.Read8(0x40) != 0x7F || e.Read16(0x42) != 0xBEEF || e.Read32(0x44) != 0x12345678 {
		t.Error("writes did not reach the engine")
	}
	stats := e.Stats()
	if stats.Write8 != 1 || stats.Write16 != 1 || stats.Write32 != 1 {
		t.Errorf("write primitives = %+v", stats)
	}
}

func TestReadByteRange(t *testing.T) {
	h, e := newHost(t)
	for i := uint32(0); i < 4; i++ {
		e.Write8(0x100+i, uint8(i+1))
	}
	if err := h.DoString(`
		local t = memory.readbyterange(0x100, 4)
		n = #t
		sum = 0
		for _, v in ipairs(t) do sum = sum * 10 + v end
	`); err != nil {
		t.Fatal(err)
	}
	if got := global(t, h, "n"); got != lua.LNumber(4) {
		t.Errorf("n = %v", got)
	}
	if got := global(t, h, "sum"); got != lua.LNumber(1234) {
		t.Errorf("sum = %v", got)
	}
	if err := h.DoString(`memory.readbyterange(0, -1)`); err == nil {
		t.Error("negative length accepted")
	}
}

func TestRegisters(t *testing.T) {
	h, e := newHost(t)
	if err := h.DoString(`
		memory.setregister("arm9.r13", 0x023FFFFC)
		sp = memory.getregister("arm9.sp")
		memory.setregister("arm7.pc", 0x037F8000)
		memory.setnextinstruction(0x02000004)
		ni = memory.getnextinstruction()
	`); err != nil {
		t.Fatal(err)
	}
	if got := global(t, h, "sp"); got != lua.LNumber(0x023FFFFC) {
		t.Errorf("sp = %v", got)
	}
	if got := e.ReadRegister(emulator.Token(emulator.PROCESSOR_ARM7, emulator.REG_R15)); got != 0x037F8000 {
		t.Errorf("arm7.r15 = %#x", got)
	}
	if got := global(t, h, "ni"); got != lua.LNumber(0x02000004) {
		t.Errorf("ni = %v", got)
	}

	err := h.DoString(`memory.getregister("arm9.r99")`)
	if err == nil || !strings.Contains(err.Error(), "register unknown") {
		t.Errorf("bad register error = %v", err)
	}
}

func TestWatchCallbacks(t *testing.T) {
	h, e := newHost(t)
	if err := h.DoString(`
		hits = {}
		memory.registerwrite(0x200, 4, function(addr, size)
			table.insert(hits, string.format("first %x/%d", addr, size))
		end)
		memory.registerwrite(0x200, 4, function(addr, size)
			table.insert(hits, string.format("w %x/%d=%x", addr, size, memory.readword(addr)))
			return true
		end)
		memory.registerread(0x300, function(addr, size)
			table.insert(hits, string.format("r %x", addr))
		end)
		memory.registerexec(0x2000000, function(addr)
			table.insert(hits, string.format("x %x", addr))
		end)
	`); err != nil {
		t.Fatal(err)
	}
	e.CPUWrite(0x202, 2, 0xABCD)
	e.CPURead(0x300, 1)
	e.CPURead(0x301, 1)
	e.Exec(0x2000000)

	if err := h.DoString(`
		memory.registerwrite(0x200, 4, nil)
		memory.registerread(0x300, nil)
		memory.registerexec(0x2000000, nil)
	`); err != nil {
		t.Fatal(err)
	}
	e.CPUWrite(0x200, 4, 0)
	e.CPURead(0x300, 1)
	e.Exec(0x2000000)

	var got []string
	hits := global(t, h, "hits").(*lua.LTable)
	hits.ForEach(func(_, v lua.LValue) {
		got = append(got, v.String())
	})
	want := []string{"w 202/2=abcd", "r 300", "x 2000000"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("callback log (-want +got):\n%s", diff)
	}
}

func TestFailingCallbackReturnsFalse(t *testing.T) {
	h, e := newHost(t)
	if err := h.DoString(`
		memory.registerwrite(0x10, 1, function() error("boom") end)
	`); err != nil {
		t.Fatal(err)
	}
	e.CPUWrite(0x10, 1, 1)
	if err := h.DoString(`after = memory.readbyte(0x10)`); err != nil {
		t.Fatalf("host unusable after failed callback: %v", err)
	}
	if got := global(t, h, "after"); got != lua.LNumber(1) {
		t.Errorf("after = %v", got)
	}
}

func TestBadCallbackArgument(t *testing.T) {
	h, _ := newHost(t)
	if err := h.DoString(`memory.registerwrite(0x10, 4, "nope")`); err == nil {
		t.Error("string callback accepted")
	}
}

func TestWatchSizeRange(t *testing.T) {
	h, e := newHost(t)
	for _, size := range []string{"0", "-1", "0x10002"} {
		err := h.DoString(`memory.registerwrite(0x40, ` + size + `, function() end)`)
		if err == nil || !strings.Contains(err.Error(), "size out of range") {
			t.Errorf("registerwrite size %s error = %v", size, err)
		}
	}
	for _, size := range []int{0, 1, 2, 0xFFFF} {
		if e.Watching(emulator.WATCH_WRITE, 0x40, size) {
			t.Errorf("watch of size %d registered", size)
		}
	}
	if err := h.DoString(`memory.registerread(0x40, 0xFFFF, function() end)`); err != nil {
		t.Fatalf("registerread size 0xffff error = %v", err)
	}
	if !e.Watching(emulator.WATCH_READ, 0x40, 0xFFFF) {
		t.Error("size 0xffff watch missing")
	}
}

func TestDoFile(t *testing.T) {
	h, e := newHost(t)
	path := filepath.Join(t.TempDir(), "poke.lua")
	if err := os.WriteFile(path, []byte("memory.writeword(0x80, 0x1234)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if got := e.Read16(0x80); got != 0x1234 {
		t.Errorf("Read16 = %#x", got)
	}
}
