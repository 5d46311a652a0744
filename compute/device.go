// Package compute defines the device abstraction used by the tracer. The
// interfaces follow the OpenCL model: a device owns a context, a single
// in-order command queue and one program; buffers and kernels are created
// from the device.
package compute

import "fmt"

type DeviceType uint8

// Supported device types.
const (
	CpuDevice   DeviceType = 1 << iota
	GpuDevice              = 1 << iota
	OtherDevice            = 1 << iota
	AllDevices             = 0xFF
)

func (dt DeviceType) String() string {
	switch dt {
	case CpuDevice:
		return "CPU"
	case GpuDevice:
		return "GPU"
	case OtherDevice:
		return "Other"
	case AllDevices:
		return "All"
	}
	return fmt.Sprintf("DeviceType(%d)", uint8(dt))
}

// Parse a device type name (cpu, gpu, other or all).
func ParseDeviceType(name string) (DeviceType, error) {
	switch name {
	case "cpu", "CPU":
		return CpuDevice, nil
	case "gpu", "GPU":
		return GpuDevice, nil
	case "other":
		return OtherDevice, nil
	case "all", "":
		return AllDevices, nil
	}
	return 0, fmt.Errorf("compute: unknown device type %q", name)
}

// Memory access flags for device buffers.
type MemFlag uint8

const (
	MemReadWrite MemFlag = iota
	MemReadOnly
	MemWriteOnly
)

// A kernel program. IncludeDir, if set, is passed to the device compiler as
// an include path.
type ProgramSource struct {
	Name       string
	Source     string
	IncludeDir string
}

// A compute device.
type Device interface {
	Name() string
	Type() DeviceType

	// Create the device context and command queue and build the program.
	// A failed build returns a *BuildError.
	Init(program ProgramSource) error

	// Create an unallocated buffer.
	Buffer(name string) Buffer

	// Lookup a kernel in the built program.
	Kernel(name string) (Kernel, error)

	// Block until all queued work has completed.
	Finish() error

	// Release the program, queue and context.
	Close()
}

// A device memory buffer.
type Buffer interface {
	Name() string

	// Allocated size in bytes.
	Size() int

	// Allocate a new device buffer of the given size. Any previous
	// allocation is released; kernels bound to it must be re-bound.
	Allocate(size int, flags MemFlag) error

	// Copy a slice into the buffer starting at the given byte offset.
	WriteData(data interface{}, offset int) error

	// Blocking copy from the buffer into a host slice. The read waits for
	// all previously queued work. If size <= 0 the entire buffer is read.
	ReadData(srcOffset, dstOffset, size int, hostBuffer interface{}) error

	// Zero-fill the buffer.
	Clear() error

	Release()
}

// A device kernel.
type Kernel interface {
	Name() string

	// Bind a single argument. Supported values are buffers created by the
	// same device, int32, uint32, float32, vectors and pointers to structs
	// that are passed by value.
	SetArg(index uint32, arg interface{}) error

	// Bind arguments starting at slot 0.
	SetArgs(args ...interface{}) error

	// Enqueue a 1D range. Arguments are captured at enqueue time. If
	// localWorkSize is 0 the device picks the work group size.
	Exec1D(offset, globalWorkSize, localWorkSize int) error

	Release()
}
