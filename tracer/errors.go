package tracer

import "errors"

var (
	ErrInvalidDimensions   = errors.New("tracer: frame dimensions must be non-zero")
	ErrInvalidTickCount    = errors.New("tracer: ticks unchanged must be at least 1")
	ErrInvalidOutputBuffer = errors.New("tracer: output buffer must hold 4 bytes per pixel")
)
