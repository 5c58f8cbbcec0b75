package memory

import (
	"github.com/modern-go/reflect2"
	"golang.org/x/exp/constraints"

	"github.com/wnxd/dsmem/emulator"
)

// Element is the set of types memory can be indexed as. The width of the
// type decides which engine primitive serves a single-element access.
type Element interface {
	constraints.Integer
	~int8 | ~int16 | ~int32 | ~uint8 | ~uint16 | ~uint32
}

// Width returns the number of foreign bytes one T occupies.
func Width[T Element]() uint32 {
	var zero T
	return uint32(reflect2.TypeOf(zero).Type1().Size())
}

func typeName[T Element]() string {
	var zero T
	return reflect2.TypeOf(zero).String()
}

// Decode interprets the first Width[T]() bytes of b in the given byte order.
// Signed types reuse the bit pattern.
func Decode[T Element](order emulator.ByteOrder, b []byte) T {
	switch Width[T]() {
	case 1:
		return fromRaw[T](uint32(b[0]))
	case 2:
		return fromRaw[T](uint32(order.Binary().Uint16(b)))
	}
	return fromRaw[T](order.Binary().Uint32(b))
}

// fromRaw narrows the result of a width-matched primitive to T.
func fromRaw[T Element](raw uint32) T {
	return T(raw)
}

// toRaw is the primitive argument for v: its low Width[T]() bytes, without
// sign extension.
func toRaw[T Element](v T, width uint32) uint32 {
	if width == 4 {
		return uint32(v)
	}
	return uint32(v) & (1<<(8*width) - 1)
}
