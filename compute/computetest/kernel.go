package computetest

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/lumenrt/lumen/compute"
	"github.com/lumenrt/lumen/types"
)

type boundArg struct {
	set   bool
	buf   *Buffer
	gen   uint64
	value []byte
}

// A kernel backed by a KernelFunc.
type Kernel struct {
	dev  *Device
	name string
	def  kernelDef
	args []boundArg
}

func (k *Kernel) Name() string {
	return k.name
}

func (k *Kernel) SetArgs(args ...interface{}) error {
	for argIndex, arg := range args {
		if err := k.SetArg(uint32(argIndex), arg); err != nil {
			return err
		}
	}
	return nil
}

func valueBytes(ptr unsafe.Pointer, size int) []byte {
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(ptr), size))
	return out
}

func (k *Kernel) SetArg(index uint32, arg interface{}) error {
	if int(index) >= len(k.args) {
		return fmt.Errorf("computetest: kernel %s has %d args; invalid arg index %d", k.name, len(k.args), index)
	}

	var bound boundArg
	switch v := arg.(type) {
	case *Buffer:
		if v.dev != k.dev {
			return fmt.Errorf("computetest: buffer %s belongs to another device", v.name)
		}
		bound = boundArg{buf: v, gen: v.gen}
	case int32:
		bound.value = valueBytes(unsafe.Pointer(&v), 4)
	case uint32:
		bound.value = valueBytes(unsafe.Pointer(&v), 4)
	case float32:
		bound.value = valueBytes(unsafe.Pointer(&v), 4)
	case types.Vec2:
		bound.value = valueBytes(unsafe.Pointer(&v[0]), 8)
	case types.Vec3:
		bound.value = valueBytes(unsafe.Pointer(&v[0]), 12)
	case types.Vec4:
		bound.value = valueBytes(unsafe.Pointer(&v[0]), 16)
	default:
		ptr, size := compute.StructData(arg)
		if size == 0 {
			return fmt.Errorf("computetest: could not set arg %d for kernel %s; unsupported arg type: %s", index, k.name, reflect.TypeOf(arg))
		}
		bound.value = valueBytes(ptr, size)
	}

	bound.set = true
	k.args[index] = bound
	k.dev.record(Op{Kind: OpSetArg, Target: k.name, Slot: index})
	return nil
}

func (k *Kernel) Exec1D(offset, globalWorkSize, _ int) error {
	if k.args == nil {
		return fmt.Errorf("computetest: kernel %s has been released", k.name)
	}

	for index, arg := range k.args {
		switch {
		case !arg.set:
			return fmt.Errorf("%w: kernel %s slot %d", ErrUnboundArgument, k.name, index)
		case arg.buf != nil && (arg.buf.gen != arg.gen || arg.buf.store == nil):
			return fmt.Errorf("%w: kernel %s slot %d (%s)", ErrStaleArgument, k.name, index, arg.buf.name)
		}
	}

	k.dev.record(Op{Kind: OpExec, Target: k.name, Size: globalWorkSize})

	inv := &Invocation{Kernel: k.name, args: k.args}
	for id := offset; id < offset+globalWorkSize; id++ {
		inv.GlobalID = id
		if err := k.def.fn(inv); err != nil {
			return fmt.Errorf("computetest: kernel %s failed at work item %d: %w", k.name, id, err)
		}
	}
	return nil
}

func (k *Kernel) Release() {
	k.args = nil
}

// The arguments of a single work item.
type Invocation struct {
	Kernel   string
	GlobalID int

	args []boundArg
}

// Get the buffer bound to slot. Panics if the slot holds a value.
func (inv *Invocation) Buffer(slot uint32) *Buffer {
	arg := inv.args[slot]
	if arg.buf == nil {
		panic(fmt.Sprintf("computetest: kernel %s slot %d is not a buffer", inv.Kernel, slot))
	}
	return arg.buf
}

// Get the raw bytes of a by-value argument.
func (inv *Invocation) Value(slot uint32) []byte {
	return inv.args[slot].value
}

func (inv *Invocation) Uint32(slot uint32) uint32 {
	return ArgAs[uint32](inv, slot)
}

// Decode a by-value argument into T. Panics if the bound size differs from
// the size of T.
func ArgAs[T any](inv *Invocation, slot uint32) T {
	var v T
	raw := inv.Value(slot)
	if len(raw) != int(unsafe.Sizeof(v)) {
		panic(fmt.Sprintf("computetest: kernel %s slot %d holds %d bytes; cannot decode %T", inv.Kernel, slot, len(raw), v))
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), len(raw)), raw)
	return v
}
