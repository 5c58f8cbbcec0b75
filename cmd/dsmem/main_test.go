package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wnxd/dsmem/emulator/ram"
	"github.com/wnxd/dsmem/memory"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    memory.Range
		wantErr bool
	}{
		{"0x100:0x110", memory.Range{Start: 0x100, End: 0x110}, false},
		{"16:32", memory.Range{Start: 16, End: 32}, false},
		{"0x100", memory.Range{}, true},
		{"x:1", memory.Range{}, true},
		{"1:0x100000000", memory.Range{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseRange() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDump(t *testing.T) {
	e := ram.New(0x1000)
	for i := uint32(0); i < 8; i++ {
		e.Write16(0x100+2*i, uint16(0xFFF0+i))
	}
	mem := memory.New(e)

	var out bytes.Buffer
	if err := dumpAs("u16", mem, memory.Span(0x100, 16), &out); err != nil {
		t.Fatalf("dumpAs(u16) error = %v", err)
	}
	if !strings.Contains(out.String(), "FFF0 FFF1") || !strings.Contains(out.String(), "00000100") {
		t.Errorf("u16 dump:\n%s", out.String())
	}

	out.Reset()
	if err := dumpAs("i16", mem, memory.Span(0x100, 4), &out); err != nil {
		t.Fatalf("dumpAs(i16) error = %v", err)
	}
	if !strings.Contains(out.String(), "-16") || !strings.Contains(out.String(), "-15") {
		t.Errorf("i16 dump:\n%s", out.String())
	}

	if err := dumpAs("u32", mem, memory.Range{Start: 0x100, End: 0x106}, &out); !errors.Is(err, memory.ErrRangeMisaligned) {
		t.Errorf("misaligned dump error = %v", err)
	}
	if err := dumpAs("f32", mem, memory.Span(0, 4), &out); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestRealMainExitCodes(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(bad, []byte("error('boom')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		args    []string
		code    int
		wantOut string
		wantErr string
	}{
		{"usage", nil, 1, "", "Usage:"},
		{"unknown flag", []string{"-nope"}, 2, "", "flag provided but not defined"},
		{"dump", []string{"-ram", "4096", "-dump", "0:4"}, 0, "00000000", ""},
		{"bad range", []string{"-ram", "4096", "-dump", "4"}, 1, "", "Error: range"},
		{"script error", []string{"-ram", "4096", "-script", bad}, 1, "", "Error: script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := realMain(tt.args, &stdout, &stderr); code != tt.code {
				t.Fatalf("realMain() = %d, want %d\nstderr: %s", code, tt.code, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantErr)
			}
		})
	}
}
