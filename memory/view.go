package memory

import (
	"go.uber.org/zap"
)

// view is the width-erased part of a handle. Range walking lives here so it
// exists once for every element type.
type view struct {
	mem       *Memory
	width     uint32
	typ       string
	exclusive bool
	closed    bool
}

func newView[T Element](m *Memory, exclusive bool) view {
	return view{
		mem:       m,
		width:     Width[T](),
		typ:       typeName[T](),
		exclusive: exclusive,
	}
}

func (v *view) live() {
	if v.closed {
		panic(ErrHandleClosed)
	}
}

func (v *view) close() {
	if v.closed {
		return
	}
	v.closed = true
	v.mem.release(v.exclusive)
}

// count validates r against the element width and returns the number of
// elements it spans.
func (v *view) count(r Range) (int, error) {
	var err error
	switch {
	case r.End < r.Start:
		err = ErrRangeInverted
	case !IsAligned(r.End-r.Start, v.width):
		err = ErrRangeMisaligned
	default:
		return int((r.End - r.Start) / v.width), nil
	}
	Logger().Debug("range rejected",
		zap.String("type", v.typ),
		zap.Uint32("start", r.Start),
		zap.Uint32("end", r.End),
		zap.Error(err))
	return 0, &RangeError{Start: r.Start, End: r.End, Width: v.width, Err: err}
}

// walk calls fn for the n elements starting at start, in ascending address
// order.
func (v *view) walk(start uint32, n int, fn func(i int, addr uint32)) {
	addr := start
	for i := 0; i < n; i++ {
		fn(i, addr)
		addr += v.width
	}
}
