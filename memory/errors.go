package memory

import (
	"errors"
	"fmt"
)

var (
	ErrBorrowed        = errors.New("memory already borrowed")
	ErrHandleClosed    = errors.New("memory handle closed")
	ErrRangeMisaligned = errors.New("range length not a multiple of element width")
	ErrRangeInverted   = errors.New("range end before start")
	ErrLengthMismatch  = errors.New("value count does not match range length")
	ErrIndexValueCount = errors.New("address index takes exactly one value")
	ErrIndexInvalid    = errors.New("index invalid")
	ErrNegativeOffset  = errors.New("negative offset")
)

// RangeError reports a range that cannot be walked with the element width
// of the handle it was passed to.
type RangeError struct {
	Start, End uint32
	Width      uint32
	Err        error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range [%#x, %#x) width %d: %v", e.Start, e.End, e.Width, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}
