// Package encoding maps Go structs and arrays built from fixed-width integers
// onto foreign memory, using the natural alignment of an ARM C compiler.
//
// Only bool, int8/uint8, int16/uint16, int32/uint32, arrays and structs of
// those are supported. Fields tagged `encoding:"ignore"` are skipped and take
// no space in foreign memory.
package encoding

import (
	"reflect"

	"github.com/modern-go/reflect2"
)

// Size returns the number of foreign bytes val occupies. val may be a value
// or a pointer to one.
func Size(val any) (int, error) {
	if val == nil {
		return 0, ErrUnsupportedType
	}
	typ := reflect2.TypeOf(val)
	if typ.Kind() == reflect.Pointer {
		typ = typ.(reflect2.PtrType).Elem()
	}
	l, err := getLayout(typ)
	if err != nil {
		return 0, err
	}
	return l.size, nil
}

// Decode fills the value val points to from stream.
func Decode(stream Stream, val any) error {
	if val == nil {
		return ErrNotPointer
	}
	typ := reflect2.TypeOf(val)
	if typ.Kind() != reflect.Pointer || typ.IsNil(val) {
		return ErrNotPointer
	}
	l, err := getLayout(typ.(reflect2.PtrType).Elem())
	if err != nil {
		return err
	}
	l.decode(stream, reflect2.PtrOf(val))
	return nil
}

// Encode writes val, or the value it points to, into stream.
func Encode(stream WriteStream, val any) error {
	if val == nil {
		return ErrUnsupportedType
	}
	typ := reflect2.TypeOf(val)
	if typ.Kind() == reflect.Pointer {
		if typ.IsNil(val) {
			return ErrNotPointer
		}
		typ = typ.(reflect2.PtrType).Elem()
	}
	l, err := getLayout(typ)
	if err != nil {
		return err
	}
	l.encode(stream, reflect2.PtrOf(val))
	return nil
}
