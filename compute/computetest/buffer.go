package computetest

import (
	"fmt"
	"unsafe"

	"github.com/lumenrt/lumen/compute"
)

// An in-memory buffer. Storage is 8-byte aligned so it can be viewed as any
// record type.
type Buffer struct {
	dev  *Device
	name string

	store []uint64
	size  int

	gen    uint64
	allocs int
}

func (b *Buffer) Name() string {
	return b.name
}

func (b *Buffer) Size() int {
	return b.size
}

// Get the allocation generation. It changes on every Allocate and Release.
func (b *Buffer) Generation() uint64 {
	return b.gen
}

// Get the number of successful Allocate calls.
func (b *Buffer) Allocations() int {
	return b.allocs
}

func (b *Buffer) Allocate(size int, _ compute.MemFlag) error {
	b.dev.record(Op{Kind: OpAllocate, Target: b.name, Size: size})

	b.Release()
	if size <= 0 {
		return fmt.Errorf("%w: invalid size %d for buffer %s", ErrAllocationFailure, size, b.name)
	}
	if b.dev.AllocLimit > 0 && size > b.dev.AllocLimit {
		return fmt.Errorf("%w: buffer %s of size %d exceeds the device limit of %d", ErrAllocationFailure, b.name, size, b.dev.AllocLimit)
	}

	b.store = make([]uint64, (size+7)/8)
	b.size = size
	b.allocs++
	return nil
}

func (b *Buffer) WriteData(data interface{}, offset int) error {
	src := compute.SliceBytes(data)
	if len(src) == 0 {
		return compute.ErrEmptyData
	}
	if offset < 0 || offset+len(src) > b.size {
		return fmt.Errorf("%w: buffer %s has %d bytes; cannot copy %d bytes at offset %d", compute.ErrInsufficientSpace, b.name, b.size, len(src), offset)
	}

	b.dev.record(Op{Kind: OpWrite, Target: b.name, Size: len(src)})
	copy(b.Bytes()[offset:], src)
	return nil
}

func (b *Buffer) ReadData(srcOffset, dstOffset, size int, hostBuffer interface{}) error {
	if size <= 0 {
		size = b.size - srcOffset
	}

	dst := compute.SliceBytes(hostBuffer)
	if srcOffset < 0 || dstOffset < 0 || srcOffset+size > b.size || dstOffset+size > len(dst) {
		return fmt.Errorf("%w: cannot read %d bytes from %s", compute.ErrInsufficientSpace, size, b.name)
	}

	b.dev.record(Op{Kind: OpRead, Target: b.name, Size: size})
	copy(dst[dstOffset:dstOffset+size], b.Bytes()[srcOffset:srcOffset+size])
	return nil
}

func (b *Buffer) Clear() error {
	b.dev.record(Op{Kind: OpClear, Target: b.name, Size: b.size})
	clear(b.store)
	return nil
}

func (b *Buffer) Release() {
	if b.store == nil {
		return
	}
	b.dev.record(Op{Kind: OpRelease, Target: b.name, Size: b.size})
	b.store = nil
	b.size = 0
	b.gen++
}

// View the buffer contents as bytes.
func (b *Buffer) Bytes() []byte {
	if b.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.store[0])), b.size)
}

// View the buffer contents as float32 values.
func (b *Buffer) Float32s() []float32 {
	return View[float32](b)
}

// View the buffer contents as uint32 values.
func (b *Buffer) Uint32s() []uint32 {
	return View[uint32](b)
}

// View the buffer contents as a slice of T. Trailing bytes that do not fill
// a whole T are ignored.
func View[T any](b *Buffer) []T {
	var zero T
	n := b.size / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.store[0])), n)
}
