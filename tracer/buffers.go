package tracer

import (
	"unsafe"

	"github.com/lumenrt/lumen/compute"
	"github.com/lumenrt/lumen/scene"
)

// A growable device buffer holding fixed-size records. Capacity only grows;
// kernels read exactly the number of records they are told about and ignore
// anything past it.
type recordBuffer[T any] struct {
	buf compute.Buffer
}

// Create a record buffer with room for a single record so that it always
// refers to a valid device allocation.
func newRecordBuffer[T any](dev compute.Device, name string) (*recordBuffer[T], error) {
	rb := &recordBuffer[T]{buf: dev.Buffer(name)}
	if err := rb.buf.Allocate(rb.recordSize(), compute.MemReadOnly); err != nil {
		return nil, err
	}
	return rb, nil
}

func (rb *recordBuffer[T]) recordSize() int {
	var rec T
	return int(unsafe.Sizeof(rec))
}

// Get the buffer capacity in records.
func (rb *recordBuffer[T]) capacity() int {
	return rb.buf.Size() / rb.recordSize()
}

// Copy records to the device, reallocating to exactly the required size if
// the buffer is too small. Empty inputs are ignored. Returns true if the
// device buffer was replaced; kernels must then be re-bound.
func (rb *recordBuffer[T]) upload(records []T) (bool, error) {
	if len(records) == 0 {
		return false, nil
	}

	var reallocated bool
	required := rb.recordSize() * len(records)
	if rb.buf.Size() < required {
		if err := rb.buf.Allocate(required, compute.MemReadOnly); err != nil {
			return false, err
		}
		reallocated = true
	}

	return reallocated, rb.buf.WriteData(records, 0)
}

func (rb *recordBuffer[T]) release() {
	rb.buf.Release()
}

type bufferSet struct {
	// Scene data.
	Shapes    *recordBuffer[scene.Shape]
	Triangles *recordBuffer[scene.Triangle]
	Materials *recordBuffer[scene.Material]

	// Per-pixel float4 accumulator.
	Canvas compute.Buffer

	// Per-pixel ARGB bytes.
	Output compute.Buffer
}

// Allocate the scene buffers and the frame buffers for the given frame size.
func newBufferSet(dev compute.Device, frameW, frameH uint32) (*bufferSet, error) {
	var err error
	bs := &bufferSet{}

	if bs.Shapes, err = newRecordBuffer[scene.Shape](dev, "shapes"); err != nil {
		bs.release()
		return nil, err
	}
	if bs.Triangles, err = newRecordBuffer[scene.Triangle](dev, "triangles"); err != nil {
		bs.release()
		return nil, err
	}
	if bs.Materials, err = newRecordBuffer[scene.Material](dev, "materials"); err != nil {
		bs.release()
		return nil, err
	}

	pixels := int(frameW) * int(frameH)

	bs.Canvas = dev.Buffer("canvas")
	if err = bs.Canvas.Allocate(pixels*sizeofCanvasPixel, compute.MemReadWrite); err != nil {
		bs.release()
		return nil, err
	}
	if err = bs.Canvas.Clear(); err != nil {
		bs.release()
		return nil, err
	}

	bs.Output = dev.Buffer("output")
	if err = bs.Output.Allocate(pixels*sizeofOutputPixel, compute.MemWriteOnly); err != nil {
		bs.release()
		return nil, err
	}

	return bs, nil
}

// Release all buffers.
func (bs *bufferSet) release() {
	if bs.Shapes != nil {
		bs.Shapes.release()
	}
	if bs.Triangles != nil {
		bs.Triangles.release()
	}
	if bs.Materials != nil {
		bs.Materials.release()
	}
	if bs.Canvas != nil {
		bs.Canvas.Release()
	}
	if bs.Output != nil {
		bs.Output.Release()
	}
}
