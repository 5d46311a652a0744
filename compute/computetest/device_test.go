package computetest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrt/lumen/compute"
)

type params struct {
	Scale float32
	Bias  float32
}

func newScaleDevice(t *testing.T) *Device {
	dev := NewDevice("test")
	dev.RegisterKernel("scale", 2, func(inv *Invocation) error {
		p := ArgAs[params](inv, 1)
		data := inv.Buffer(0).Float32s()
		data[inv.GlobalID] = data[inv.GlobalID]*p.Scale + p.Bias
		return nil
	})
	require.NoError(t, dev.Init(compute.ProgramSource{Name: "test"}))
	return dev
}

func TestKernelExec(t *testing.T) {
	dev := newScaleDevice(t)

	buf := dev.Buffer("data")
	require.NoError(t, buf.Allocate(16, compute.MemReadWrite))
	require.NoError(t, buf.WriteData([]float32{1, 2, 3, 4}, 0))

	k, err := dev.Kernel("scale")
	require.NoError(t, err)

	p := params{Scale: 2, Bias: 1}
	require.NoError(t, k.SetArgs(buf, &p))

	// Arguments are captured at bind time.
	p.Scale = 100
	require.NoError(t, k.Exec1D(0, 4, 0))

	out := make([]float32, 4)
	require.NoError(t, buf.ReadData(0, 0, 0, out))
	assert.Equal(t, []float32{3, 5, 7, 9}, out)

	assert.Len(t, dev.OpsOf(OpExec), 1)
}

func TestStaleBufferArgument(t *testing.T) {
	dev := newScaleDevice(t)

	buf := dev.Buffer("data")
	require.NoError(t, buf.Allocate(16, compute.MemReadWrite))

	k, err := dev.Kernel("scale")
	require.NoError(t, err)
	require.NoError(t, k.SetArgs(buf, &params{Scale: 1}))

	require.NoError(t, buf.Allocate(32, compute.MemReadWrite))
	assert.True(t, errors.Is(k.Exec1D(0, 4, 0), ErrStaleArgument))

	require.NoError(t, k.SetArg(0, buf))
	assert.NoError(t, k.Exec1D(0, 8, 0))
}

func TestUnboundArgument(t *testing.T) {
	dev := newScaleDevice(t)
	k, err := dev.Kernel("scale")
	require.NoError(t, err)
	assert.True(t, errors.Is(k.Exec1D(0, 1, 0), ErrUnboundArgument))
	assert.Error(t, k.SetArg(5, uint32(1)))
	assert.Error(t, k.SetArg(0, "unsupported"))
}

func TestBufferBounds(t *testing.T) {
	dev := NewDevice("test")
	dev.AllocLimit = 64

	buf := dev.Buffer("data")
	assert.True(t, errors.Is(buf.Allocate(128, compute.MemReadWrite), ErrAllocationFailure))
	require.NoError(t, buf.Allocate(8, compute.MemReadWrite))

	assert.True(t, errors.Is(buf.WriteData([]uint32{1, 2, 3}, 0), compute.ErrInsufficientSpace))
	assert.True(t, errors.Is(buf.WriteData([]uint32{}, 0), compute.ErrEmptyData))
	require.NoError(t, buf.WriteData([]uint32{7}, 4))
	assert.Equal(t, []uint32{0, 7}, buf.(*Buffer).Uint32s())

	require.NoError(t, buf.Clear())
	assert.Equal(t, []uint32{0, 0}, buf.(*Buffer).Uint32s())
}

func TestInitFailure(t *testing.T) {
	dev := NewDevice("test")
	dev.BuildErr = &compute.BuildError{Device: "test", Message: "build failed", Log: "line 1: syntax error"}

	err := dev.Init(compute.ProgramSource{Name: "broken"})
	var buildErr *compute.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "line 1: syntax error", buildErr.Log)

	_, err = dev.Kernel("scale")
	assert.Equal(t, ErrNotInitialized, err)
}
