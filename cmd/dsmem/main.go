package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wnxd/dsmem/emulator/ram"
	"github.com/wnxd/dsmem/memory"
	"github.com/wnxd/dsmem/script"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain returns the exit code so deferred cleanup runs before exiting.
func realMain(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("dsmem", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		scriptFile = flags.String("script", "", "Lua script to run before dumping")
		ramSize    = flags.Uint("ram", ram.DefaultSize, "RAM engine size in bytes")
		dumpRange  = flags.String("dump", "", "Range to dump as start:end (end exclusive)")
		elemType   = flags.String("type", "u8", "Element type: u8, u16, u32, i8, i16, i32")
		verbose    = flags.Bool("v", false, "Debug logging")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *scriptFile == "" && *dumpRange == "" {
		fmt.Fprintln(stderr, "Usage: dsmem [-script file.lua] [-dump start:end [-type u16]] [-ram size] [-v]")
		return 1
	}

	log := zap.NewNop()
	if *verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	defer log.Sync()
	memory.SetLogger(log.Named("memory"))
	script.SetLogger(log.Named("script"))

	if err := run(*scriptFile, uint32(*ramSize), *dumpRange, *elemType, stdout); err != nil {
		log.Error("run failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(scriptFile string, ramSize uint32, dumpRange, elemType string, out io.Writer) error {
	mem := memory.New(ram.New(ramSize))

	if scriptFile != "" {
		host := script.New(mem)
		defer host.Close()
		if err := host.DoFile(scriptFile); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}

	if dumpRange == "" {
		return nil
	}
	rg, err := parseRange(dumpRange)
	if err != nil {
		return err
	}
	return dumpAs(elemType, mem, rg, out)
}

func parseRange(s string) (memory.Range, error) {
	start, end, ok := strings.Cut(s, ":")
	if !ok {
		return memory.Range{}, fmt.Errorf("range %q: want start:end", s)
	}
	a, err := strconv.ParseUint(start, 0, 32)
	if err != nil {
		return memory.Range{}, fmt.Errorf("range start: %w", err)
	}
	b, err := strconv.ParseUint(end, 0, 32)
	if err != nil {
		return memory.Range{}, fmt.Errorf("range end: %w", err)
	}
	return memory.Range{Start: uint32(a), End: uint32(b)}, nil
}
