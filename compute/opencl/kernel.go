//go:build opencl

package opencl

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"

	"github.com/lumenrt/lumen/compute"
	"github.com/lumenrt/lumen/types"
)

// A wrapper around opencl kernelHandles.
type Kernel struct {
	device       *Device
	kernelHandle cl.Kernel
	name         string

	offsets         [1]uint64
	globalWorkSizes [1]uint64
	localWorkSizes  [1]uint64
}

func (k *Kernel) Name() string {
	return k.name
}

// Free any allocated resources used by this kernel.
func (k *Kernel) Release() {
	if k.kernelHandle != nil {
		cl.ReleaseKernel(k.kernelHandle)
		k.kernelHandle = nil
	}
}

// Bind arguments to consecutive slots starting at 0.
func (k *Kernel) SetArgs(args ...interface{}) error {
	for argIndex, arg := range args {
		if err := k.SetArg(uint32(argIndex), arg); err != nil {
			return err
		}
	}
	return nil
}

// Bind a single argument.
func (k *Kernel) SetArg(argIndex uint32, arg interface{}) error {
	var errCode cl.ErrorCode

	// We can't use the captured type from the switch as we get back an
	// interface and we need to obtain a pointer to the underlying data.
	switch arg.(type) {
	case *Buffer:
		bufHandle := arg.(*Buffer).Handle()
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 8, unsafe.Pointer(&bufHandle))
	case int32:
		v := arg.(int32)
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 4, unsafe.Pointer(&v))
	case uint32:
		v := arg.(uint32)
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 4, unsafe.Pointer(&v))
	case float32:
		v := arg.(float32)
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 4, unsafe.Pointer(&v))
	case types.Vec2:
		v := arg.(types.Vec2)
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 8, unsafe.Pointer(&v[0]))
	case types.Vec3:
		v := arg.(types.Vec3)
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 12, unsafe.Pointer(&v[0]))
	case types.Vec4:
		v := arg.(types.Vec4)
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, 16, unsafe.Pointer(&v[0]))
	default:
		// Parameter blocks are passed by value from a struct pointer.
		ptr, size := compute.StructData(arg)
		if size == 0 {
			return fmt.Errorf(
				"opencl device (%s): could not set arg %d for kernel %s; unsupported arg type: %s",
				k.device.info.Name,
				argIndex,
				k.name,
				reflect.TypeOf(arg),
			)
		}
		errCode = cl.SetKernelArg(k.kernelHandle, argIndex, uint64(size), ptr)
	}

	if errCode != cl.SUCCESS {
		return newError(k.device.info.Name, fmt.Sprintf("could not set arg %d for kernel %s", argIndex, k.name), errCode)
	}
	return nil
}

// Enqueue a 1D kernel range. If localWorkSize is equal to 0 then the opencl
// implementation will pick the optimal worksize split for the underlying
// hardware.
func (k *Kernel) Exec1D(offset, globalWorkSize, localWorkSize int) error {
	var offsetPtr *uint64
	var localSizePtr *uint64

	if offset > 0 {
		k.offsets[0] = uint64(offset)
		offsetPtr = &k.offsets[0]
	}
	k.globalWorkSizes[0] = uint64(globalWorkSize)
	if localWorkSize != 0 {
		k.localWorkSizes[0] = uint64(localWorkSize)
		localSizePtr = &k.localWorkSizes[0]
	}

	errCode := cl.EnqueueNDRangeKernel(
		k.device.cmdQueue,
		k.kernelHandle,
		1,
		offsetPtr,
		&k.globalWorkSizes[0],
		localSizePtr,
		0,
		nil,
		nil,
	)
	if errCode != cl.SUCCESS {
		return newError(k.device.info.Name, fmt.Sprintf("unable to execute kernel %s", k.name), errCode)
	}

	return nil
}
