package memory

import (
	"fmt"

	"github.com/wnxd/dsmem/emulator"
)

type Reader[T Element] struct {
	view
}

// ReadOne reads the element at addr with the width-matched engine
// primitive. Whatever the engine returns for an unmapped address is
// returned unchanged.
func (r *Reader[T]) ReadOne(addr uint32) T {
	r.live()
	return fromRaw[T](r.mem.read(r.width, addr))
}

// ReadRange reads every element in rg. The length of rg must be a multiple
// of the element width.
func (r *Reader[T]) ReadRange(rg Range) ([]T, error) {
	r.live()
	n, err := r.count(rg)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	if r.width == 1 && n > 0 {
		if bulk, ok := r.mem.engine.(emulator.BulkReader); ok {
			raw := make([]byte, n)
			bulk.ReadBytes(rg.Start, raw)
			order := r.mem.engine.ByteOrder()
			for i := range out {
				out[i] = Decode[T](order, raw[i:])
			}
			return out, nil
		}
	}
	r.walk(rg.Start, n, func(i int, addr uint32) {
		out[i] = fromRaw[T](r.mem.read(r.width, addr))
	})
	return out, nil
}

func (r *Reader[T]) IndexMove(idx Index) ([]T, error) {
	switch idx := idx.(type) {
	case Addr:
		return []T{r.ReadOne(uint32(idx))}, nil
	case Range:
		return r.ReadRange(idx)
	}
	return nil, fmt.Errorf("%w: %T", ErrIndexInvalid, idx)
}

func (r *Reader[T]) Pointer(addr uint32) Pointer {
	r.live()
	return Pointer{&r.view, addr}
}

// Width returns the element width in bytes.
func (r *Reader[T]) Width() uint32 {
	return r.width
}

func (r *Reader[T]) Close() error {
	r.close()
	return nil
}
