//go:build opencl

package opencl

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"

	"github.com/lumenrt/lumen/compute"
)

type Buffer struct {
	// Handle to opencl buffer.
	bufHandle cl.Mem

	// Associated Device.
	device *Device

	// A name for identifying the buffer.
	name string

	// Allocated size.
	size int
}

func (b *Buffer) Name() string {
	return b.name
}

// Get buffer size.
func (b *Buffer) Size() int {
	return b.size
}

func memFlags(flags compute.MemFlag) cl.MemFlags {
	switch flags {
	case compute.MemReadOnly:
		return cl.MEM_READ_ONLY
	case compute.MemWriteOnly:
		return cl.MEM_WRITE_ONLY
	}
	return cl.MEM_READ_WRITE
}

// Allocate a buffer with the given size and flags. The previous allocation,
// if any, is released.
func (b *Buffer) Allocate(size int, flags compute.MemFlag) error {
	var errCode cl.ErrorCode

	b.Release()

	b.bufHandle = cl.CreateBuffer(
		*b.device.ctx,
		memFlags(flags),
		cl.MemFlags(size),
		nil,
		(*int32)(&errCode),
	)

	if errCode != cl.SUCCESS {
		b.bufHandle = nil
		b.size = 0
		return newError(b.device.info.Name, fmt.Sprintf("could not allocate buffer %s of size %d", b.name, size), errCode)
	}

	b.size = size
	return nil
}

// Write data to the device buffer at the given byte offset. The behavior of
// this method is undefined if the argument does not use contiguous memory.
func (b *Buffer) WriteData(data interface{}, offset int) error {
	dataPtr, dataLen := compute.SliceData(data)
	if dataLen == 0 {
		return compute.ErrEmptyData
	}

	if offset+dataLen > b.size {
		return fmt.Errorf("%w: opencl device (%s): buffer %s has %d bytes; cannot copy %d bytes at offset %d", compute.ErrInsufficientSpace, b.device.info.Name, b.name, b.size, dataLen, offset)
	}

	errCode := cl.EnqueueWriteBuffer(
		b.device.cmdQueue,
		b.bufHandle,
		cl.TRUE,
		uint64(offset),
		uint64(dataLen),
		dataPtr,
		0,
		nil,
		nil,
	)

	if errCode != cl.SUCCESS {
		return newError(b.device.info.Name, fmt.Sprintf("error copying host data to device buffer %s", b.name), errCode)
	}

	return nil
}

// Read data from device buffer into the supplied host buffer. If size is <= 0
// then ReadData will read the entire buffer. Both src and dst offsets are
// specified in bytes.
func (b *Buffer) ReadData(srcOffset, dstOffset, size int, hostBuffer interface{}) error {
	if size <= 0 {
		size = b.size - srcOffset
	}

	dataPtr, dataLen := compute.SliceData(hostBuffer)
	if dstOffset+size > dataLen || srcOffset+size > b.size {
		return fmt.Errorf("%w: opencl device (%s): cannot read %d bytes from %s", compute.ErrInsufficientSpace, b.device.info.Name, size, b.name)
	}

	errCode := cl.EnqueueReadBuffer(
		b.device.cmdQueue,
		b.bufHandle,
		cl.TRUE,
		uint64(srcOffset),
		uint64(size),
		unsafe.Add(dataPtr, dstOffset),
		0,
		nil,
		nil,
	)

	if errCode != cl.SUCCESS {
		return newError(b.device.info.Name, fmt.Sprintf("error copying device data from %s to host buffer", b.name), errCode)
	}

	return nil
}

// Zero-fill the buffer.
func (b *Buffer) Clear() error {
	if b.size == 0 {
		return nil
	}
	return b.WriteData(make([]byte, b.size), 0)
}

// Release buffer.
func (b *Buffer) Release() {
	if b.bufHandle != nil {
		cl.ReleaseMemObject(b.bufHandle)
		b.bufHandle = nil
		b.size = 0
	}
}

// Get opencl buffer handle.
func (b *Buffer) Handle() cl.Mem {
	return b.bufHandle
}
