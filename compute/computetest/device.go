// Package computetest provides an in-memory compute device for tests.
//
// Kernels are Go functions registered by name. Exec1D runs the function once
// per work item, in submission order, which matches the observable behavior
// of a single in-order command queue. Every buffer allocation gets a new
// generation; a kernel whose bound buffer has been reallocated or released
// since SetArg fails with ErrStaleArgument, just like a device kernel would
// be left pointing at a freed handle.
package computetest

import (
	"errors"
	"fmt"

	"github.com/lumenrt/lumen/compute"
)

var (
	ErrUnknownKernel     = errors.New("computetest: unknown kernel")
	ErrNotInitialized    = errors.New("computetest: device not initialized")
	ErrStaleArgument     = errors.New("computetest: kernel argument references a released buffer")
	ErrUnboundArgument   = errors.New("computetest: kernel argument not set")
	ErrAllocationFailure = errors.New("computetest: allocation failure")
)

// A kernel implementation invoked once per work item.
type KernelFunc func(inv *Invocation) error

type kernelDef struct {
	numArgs int
	fn      KernelFunc
}

type OpKind int

// Recorded device operations.
const (
	OpInit OpKind = iota
	OpAllocate
	OpWrite
	OpRead
	OpClear
	OpRelease
	OpSetArg
	OpExec
	OpFinish
)

func (k OpKind) String() string {
	switch k {
	case OpInit:
		return "init"
	case OpAllocate:
		return "allocate"
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	case OpClear:
		return "clear"
	case OpRelease:
		return "release"
	case OpSetArg:
		return "setArg"
	case OpExec:
		return "exec"
	case OpFinish:
		return "finish"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// A recorded operation. Target is the buffer or kernel name.
type Op struct {
	Kind   OpKind
	Target string
	Size   int
	Slot   uint32
}

func (op Op) String() string {
	return fmt.Sprintf("%s(%s)", op.Kind, op.Target)
}

// An in-memory recording device.
type Device struct {
	DeviceName string
	DeviceType compute.DeviceType

	// If set, Init fails with this error.
	BuildErr error

	// If > 0, allocations larger than this many bytes fail.
	AllocLimit int

	// The program passed to Init.
	Program compute.ProgramSource

	// The operation log.
	Ops []Op

	kernels     map[string]kernelDef
	initialized bool
	closed      bool
}

// Create a device with no registered kernels.
func NewDevice(name string) *Device {
	return &Device{
		DeviceName: name,
		DeviceType: compute.CpuDevice,
		kernels:    make(map[string]kernelDef),
	}
}

// Register a kernel that takes numArgs arguments.
func (d *Device) RegisterKernel(name string, numArgs int, fn KernelFunc) {
	d.kernels[name] = kernelDef{numArgs: numArgs, fn: fn}
}

func (d *Device) Name() string {
	return d.DeviceName
}

func (d *Device) Type() compute.DeviceType {
	return d.DeviceType
}

func (d *Device) Init(program compute.ProgramSource) error {
	d.record(Op{Kind: OpInit, Target: program.Name, Size: len(program.Source)})
	if d.BuildErr != nil {
		return d.BuildErr
	}
	d.Program = program
	d.initialized = true
	return nil
}

func (d *Device) Buffer(name string) compute.Buffer {
	return &Buffer{dev: d, name: name}
}

func (d *Device) Kernel(name string) (compute.Kernel, error) {
	if !d.initialized {
		return nil, ErrNotInitialized
	}
	def, ok := d.kernels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKernel, name)
	}
	return &Kernel{
		dev:  d,
		name: name,
		def:  def,
		args: make([]boundArg, def.numArgs),
	}, nil
}

func (d *Device) Finish() error {
	d.record(Op{Kind: OpFinish})
	return nil
}

func (d *Device) Close() {
	d.closed = true
	d.initialized = false
}

// Returns true if Close has been called.
func (d *Device) Closed() bool {
	return d.closed
}

// Get the recorded operations of the given kind.
func (d *Device) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range d.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Clear the operation log.
func (d *Device) ResetOps() {
	d.Ops = d.Ops[:0]
}

func (d *Device) record(op Op) {
	d.Ops = append(d.Ops, op)
}
