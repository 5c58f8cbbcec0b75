package memory

import "fmt"

// Index selects what an IndexMove or IndexSet call touches: a single
// element at an Addr, or every element in a Range.
type Index interface {
	index()
}

type Addr uint32

// Range is the half-open byte interval [Start, End).
type Range struct {
	Start, End uint32
}

func (Addr) index()  {}
func (Range) index() {}

// Span returns the range of length bytes starting at start.
func Span(start, length uint32) Range {
	return Range{start, start + length}
}

func (r Range) Len() uint32 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%#x, %#x)", r.Start, r.End)
}

type ReadIndexer[T Element] interface {
	ReadOne(addr uint32) T
	ReadRange(r Range) ([]T, error)
	IndexMove(idx Index) ([]T, error)
}

type WriteIndexer[T Element] interface {
	ReadIndexer[T]
	WriteOne(addr uint32, value T)
	WriteRange(r Range, values []T) error
	IndexSet(idx Index, values ...T) error
}

var (
	_ ReadIndexer[uint8]   = (*Reader[uint8])(nil)
	_ WriteIndexer[uint8]  = (*Writer[uint8])(nil)
	_ WriteIndexer[int32]  = (*Writer[int32])(nil)
	_ ReadIndexer[int16]   = (*Writer[int16])(nil)
	_ WriteIndexer[uint16] = (*Writer[uint16])(nil)
)
