package emulator

import "errors"

var (
	ErrProcessorUnknown = errors.New("processor unknown")
	ErrRegisterUnknown  = errors.New("register unknown")
)
