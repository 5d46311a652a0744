//go:build opencl

package opencl

import (
	"fmt"
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"

	"github.com/lumenrt/lumen/compute"
)

const buildLogSize = 120000

// Wrapper around opencl-supported devices.
type Device struct {
	info DeviceInfo
	id   cl.DeviceId

	// Opencl handles; allocated when device is initialized.
	ctx      *cl.Context
	cmdQueue cl.CommandQueue
	program  cl.Program
}

func (d *Device) Name() string {
	return d.info.Name
}

func (d *Device) Type() compute.DeviceType {
	return d.info.Type
}

// Get the device specs.
func (d *Device) Info() DeviceInfo {
	return d.info
}

// Initialize device.
func (d *Device) Init(program compute.ProgramSource) error {
	var errCode cl.ErrorCode

	// Already initialized
	if d.ctx != nil {
		return nil
	}

	d.ctx = cl.CreateContext(nil, 1, &d.id, nil, nil, (*int32)(&errCode))
	if errCode != cl.SUCCESS {
		defer d.Close()
		return newError(d.info.Name, "could not create opencl context", errCode)
	}

	d.cmdQueue = cl.CreateCommandQueue(*d.ctx, d.id, 0, (*int32)(&errCode))
	if errCode != cl.SUCCESS {
		defer d.Close()
		return newError(d.info.Name, "could not create command queue", errCode)
	}

	progSrc := cl.Str(program.Source + "\x00")
	d.program = cl.CreateProgramWithSource(
		*d.ctx,
		1,
		&progSrc,
		nil,
		(*int32)(&errCode),
	)
	if errCode != cl.SUCCESS {
		defer d.Close()
		return newError(d.info.Name, "could not create program", errCode)
	}

	opts := "\x00"
	if program.IncludeDir != "" {
		opts = fmt.Sprintf("-I %s\x00", program.IncludeDir)
	}

	errCode = cl.BuildProgram(d.program, 1, &d.id, cl.Str(opts), nil, nil)
	if errCode != cl.SUCCESS {
		var dataLen uint64
		data := make([]byte, buildLogSize)

		cl.GetProgramBuildInfo(d.program, d.id, cl.PROGRAM_BUILD_LOG, uint64(len(data)), unsafe.Pointer(&data[0]), &dataLen)
		defer d.Close()
		return &compute.BuildError{
			Device:  d.info.Name,
			Message: fmt.Sprintf("could not build program %s (error: %s; code %d)", program.Name, ErrorName(errCode), errCode),
			Log:     clString(data, dataLen),
		}
	}

	return nil
}

// Shut down the device.
func (d *Device) Close() {
	if d.program != nil {
		cl.ReleaseProgram(d.program)
		d.program = nil
	}

	if d.cmdQueue != nil {
		cl.ReleaseCommandQueue(d.cmdQueue)
		d.cmdQueue = nil
	}

	if d.ctx != nil {
		cl.ReleaseContext(d.ctx)
		d.ctx = nil
	}
}

// Block until all enqueued commands complete.
func (d *Device) Finish() error {
	if errCode := cl.Finish(d.cmdQueue); errCode != cl.SUCCESS {
		return newError(d.info.Name, "command queue did not complete successfully", errCode)
	}
	return nil
}

// Load kernel by name.
func (d *Device) Kernel(name string) (compute.Kernel, error) {
	var errCode cl.ErrorCode
	kernelHandle := cl.CreateKernel(
		d.program,
		cl.Str(name+"\x00"),
		(*int32)(&errCode),
	)

	if errCode != cl.SUCCESS {
		return nil, newError(d.info.Name, fmt.Sprintf("could not load kernel %s", name), errCode)
	}

	return &Kernel{
		device:       d,
		kernelHandle: kernelHandle,
		name:         name,
	}, nil
}

// Create an empty buffer.
func (d *Device) Buffer(name string) compute.Buffer {
	return &Buffer{
		device: d,
		name:   name,
	}
}
