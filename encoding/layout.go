package encoding

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"
)

type decodeHandler = func(Stream, unsafe.Pointer)
type encodeHandler = func(WriteStream, unsafe.Pointer)

// layout describes how one Go type maps onto foreign memory.
type layout struct {
	decode decodeHandler
	encode encodeHandler
	size   int
	align  int
}

type fieldLayout struct {
	*layout
	goOffset  uintptr
	memOffset int
}

var layouts sync.Map

func getLayout(typ reflect2.Type) (*layout, error) {
	key := typ.RType()
	if v, ok := layouts.Load(key); ok {
		return v.(*layout), nil
	}
	l, err := build(typ)
	if err != nil {
		return nil, err
	}
	v, _ := layouts.LoadOrStore(key, l)
	return v.(*layout), nil
}

func build(typ reflect2.Type) (*layout, error) {
	switch typ.Kind() {
	case reflect.Bool:
		return &layout{
			decode: func(s Stream, ptr unsafe.Pointer) { *(*bool)(ptr) = s.Read(1) != 0 },
			encode: func(s WriteStream, ptr unsafe.Pointer) {
				var v uint32
				if *(*bool)(ptr) {
					v = 1
				}
				s.Write(1, v)
			},
			size:  1,
			align: 1,
		}, nil
	case reflect.Int8, reflect.Uint8:
		return &layout{
			decode: func(s Stream, ptr unsafe.Pointer) { *(*uint8)(ptr) = uint8(s.Read(1)) },
			encode: func(s WriteStream, ptr unsafe.Pointer) { s.Write(1, uint32(*(*uint8)(ptr))) },
			size:   1,
			align:  1,
		}, nil
	case reflect.Int16, reflect.Uint16:
		return &layout{
			decode: func(s Stream, ptr unsafe.Pointer) { *(*uint16)(ptr) = uint16(s.Read(2)) },
			encode: func(s WriteStream, ptr unsafe.Pointer) { s.Write(2, uint32(*(*uint16)(ptr))) },
			size:   2,
			align:  2,
		}, nil
	case reflect.Int32, reflect.Uint32:
		return &layout{
			decode: func(s Stream, ptr unsafe.Pointer) { *(*uint32)(ptr) = s.Read(4) },
			encode: func(s WriteStream, ptr unsafe.Pointer) { s.Write(4, *(*uint32)(ptr)) },
			size:   4,
			align:  4,
		}, nil
	case reflect.Array:
		return buildArray(typ.(reflect2.ArrayType))
	case reflect.Struct:
		return buildStruct(typ.(reflect2.StructType))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ.String())
}

func buildArray(typ reflect2.ArrayType) (*layout, error) {
	elem, err := getLayout(typ.Elem())
	if err != nil {
		return nil, err
	}
	count := typ.Len()
	stride := typ.Elem().Type1().Size()
	return &layout{
		decode: func(s Stream, ptr unsafe.Pointer) {
			for i := 0; i < count; i++ {
				elem.decode(s, unsafe.Add(ptr, uintptr(i)*stride))
			}
		},
		encode: func(s WriteStream, ptr unsafe.Pointer) {
			for i := 0; i < count; i++ {
				elem.encode(s, unsafe.Add(ptr, uintptr(i)*stride))
			}
		},
		size:  elem.size * count,
		align: elem.align,
	}, nil
}

func buildStruct(typ reflect2.StructType) (*layout, error) {
	count := typ.NumField()
	fields := make([]fieldLayout, 0, count)
	offset, maxAlign := 0, 1
	for i := 0; i < count; i++ {
		field := typ.Field(i)
		if field.Tag().Get("encoding") == "ignore" {
			continue
		}
		l, err := getLayout(field.Type())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name(), err)
		}
		offset = align(offset, l.align)
		fields = append(fields, fieldLayout{l, field.Offset(), offset})
		offset += l.size
		maxAlign = max(maxAlign, l.align)
	}
	size := align(offset, maxAlign)
	return &layout{
		decode: func(s Stream, ptr unsafe.Pointer) {
			pos := 0
			for _, f := range fields {
				if pad := f.memOffset - pos; pad > 0 {
					s.Skip(pad)
				}
				f.decode(s, unsafe.Add(ptr, f.goOffset))
				pos = f.memOffset + f.size
			}
			if pad := size - pos; pad > 0 {
				s.Skip(pad)
			}
		},
		encode: func(s WriteStream, ptr unsafe.Pointer) {
			pos := 0
			for _, f := range fields {
				if pad := f.memOffset - pos; pad > 0 {
					s.Skip(pad)
				}
				f.encode(s, unsafe.Add(ptr, f.goOffset))
				pos = f.memOffset + f.size
			}
			if pad := size - pos; pad > 0 {
				s.Skip(pad)
			}
		},
		size:  size,
		align: maxAlign,
	}, nil
}

func align(a, b int) int {
	return (a + b - 1) &^ (b - 1)
}
