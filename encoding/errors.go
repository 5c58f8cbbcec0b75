package encoding

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrNotPointer      = errors.New("value is not a non-nil pointer")
)
