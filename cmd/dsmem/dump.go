package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wnxd/dsmem/memory"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

func dumpAs(elemType string, mem *memory.Memory, rg memory.Range, out io.Writer) error {
	switch elemType {
	case "u8":
		return dump[uint8](mem, rg, out)
	case "u16":
		return dump[uint16](mem, rg, out)
	case "u32":
		return dump[uint32](mem, rg, out)
	case "i8":
		return dump[int8](mem, rg, out)
	case "i16":
		return dump[int16](mem, rg, out)
	case "i32":
		return dump[int32](mem, rg, out)
	}
	return fmt.Errorf("unknown element type %q", elemType)
}

func dump[T memory.Element](mem *memory.Memory, rg memory.Range, out io.Writer) error {
	r, err := memory.NewReader[T](mem)
	if err != nil {
		return err
	}
	defer r.Close()
	values, err := r.ReadRange(rg)
	if err != nil {
		return err
	}

	width := memory.Width[T]()
	format, cell := cellFormat[T](width)
	perRow := rowLength(cell, width)

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d × %T  %s", len(values), *new(T), rg)))
	var line strings.Builder
	for i := 0; i < len(values); i += perRow {
		line.Reset()
		line.WriteString(addrStyle.Render(fmt.Sprintf("%08X", rg.Start+uint32(i)*width)))
		line.WriteByte(' ')
		for _, v := range values[i:min(i+perRow, len(values))] {
			line.WriteByte(' ')
			fmt.Fprintf(&line, format, v)
		}
		fmt.Fprintln(out, line.String())
	}
	return nil
}

// cellFormat returns the printf verb for one element and its printed width.
func cellFormat[T memory.Element](width uint32) (string, int) {
	var zero T
	if zero-1 < zero {
		digits := map[uint32]int{1: 4, 2: 6, 4: 11}[width]
		return fmt.Sprintf("%%%dd", digits), digits
	}
	digits := int(width) * 2
	return fmt.Sprintf("%%0%dX", digits), digits
}

// rowLength fits as many cells as the terminal allows, or 16 bytes per row
// when stdout is not a terminal.
func rowLength(cell int, width uint32) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return max(1, 16/int(width))
	}
	cols, _, err := term.GetSize(fd)
	if err != nil {
		return max(1, 16/int(width))
	}
	return max(1, (cols-10)/(cell+1))
}
