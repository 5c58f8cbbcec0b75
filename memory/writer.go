package memory

import (
	"fmt"

	"github.com/wnxd/dsmem/encoding"
)

// Writer is the exclusive, write-capable handle. Every Reader operation is
// available on it.
type Writer[T Element] struct {
	Reader[T]
}

func (w *Writer[T]) WriteOne(addr uint32, value T) {
	w.live()
	w.mem.write(w.width, addr, toRaw(value, w.width))
}

// WriteRange writes values into rg in ascending address order, one engine
// primitive per element. Nothing is written when the arguments do not
// match; once writing started there is no rollback.
func (w *Writer[T]) WriteRange(rg Range, values []T) error {
	w.live()
	n, err := w.count(rg)
	if err != nil {
		return err
	}
	if n != len(values) {
		return fmt.Errorf("%w: range %s holds %d elements, got %d", ErrLengthMismatch, rg, n, len(values))
	}
	w.walk(rg.Start, n, func(i int, addr uint32) {
		w.mem.write(w.width, addr, toRaw(values[i], w.width))
	})
	return nil
}

func (w *Writer[T]) IndexSet(idx Index, values ...T) error {
	switch idx := idx.(type) {
	case Addr:
		if len(values) != 1 {
			return fmt.Errorf("%w: got %d", ErrIndexValueCount, len(values))
		}
		w.WriteOne(uint32(idx), values[0])
		return nil
	case Range:
		return w.WriteRange(idx, values)
	}
	return fmt.Errorf("%w: %T", ErrIndexInvalid, idx)
}

// Store writes val, a struct or array of fixed-width integers, at addr.
func (w *Writer[T]) Store(addr uint32, val any) error {
	w.live()
	return encoding.Encode(&writeStream{readStream{&w.view, addr}}, val)
}
