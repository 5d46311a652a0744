//go:build opencl

package opencl

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lumenrt/lumen/compute"
)

const testProgram = `
__kernel void scale(__global float *data, const float factor) {
	int id = get_global_id(0);
	data[id] *= factor;
}
`

func createCpuDevice(t *testing.T) compute.Device {
	devList, err := SelectDevices(compute.CpuDevice, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(devList) == 0 {
		t.Skip("no opencl cpu device available")
	}

	dev := devList[0]
	if err = dev.Init(compute.ProgramSource{Name: "test", Source: testProgram}); err != nil {
		t.Fatal(err)
	}
	return dev
}

func TestBufferAllocate(t *testing.T) {
	dev := createCpuDevice(t)
	defer dev.Close()

	buf := dev.Buffer("test")
	defer buf.Release()
	if err := buf.Allocate(128, compute.MemReadWrite); err != nil {
		t.Fatal(err)
	}

	expSize := 128
	if buf.Size() != expSize {
		t.Fatalf("expected buffer size to be %d; got %d", expSize, buf.Size())
	}
}

func TestBufferWriteInsufficientSpace(t *testing.T) {
	dev := createCpuDevice(t)
	defer dev.Close()

	buf := dev.Buffer("test")
	defer buf.Release()
	if err := buf.Allocate(8, compute.MemReadWrite); err != nil {
		t.Fatal(err)
	}

	err := buf.WriteData(make([]float32, 4), 0)
	if !errors.Is(err, compute.ErrInsufficientSpace) {
		t.Fatalf("expected ErrInsufficientSpace; got %v", err)
	}
}

func TestKernelExec(t *testing.T) {
	dev := createCpuDevice(t)
	defer dev.Close()

	data := []float32{1, 2, 3, 4}
	buf := dev.Buffer("data")
	defer buf.Release()
	if err := buf.Allocate(16, compute.MemReadWrite); err != nil {
		t.Fatal(err)
	}
	if err := buf.WriteData(data, 0); err != nil {
		t.Fatal(err)
	}

	kernel, err := dev.Kernel("scale")
	if err != nil {
		t.Fatal(err)
	}
	defer kernel.Release()

	if err = kernel.SetArgs(buf, float32(2)); err != nil {
		t.Fatal(err)
	}
	if err = kernel.Exec1D(0, len(data), 0); err != nil {
		t.Fatal(err)
	}

	out := make([]float32, len(data))
	if err = buf.ReadData(0, 0, 0, out); err != nil {
		t.Fatal(err)
	}

	exp := []float32{2, 4, 6, 8}
	if !reflect.DeepEqual(out, exp) {
		t.Fatalf("expected %v; got %v", exp, out)
	}
}

func TestBuildFailureLog(t *testing.T) {
	devList, err := SelectDevices(compute.CpuDevice, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(devList) == 0 {
		t.Skip("no opencl cpu device available")
	}

	dev := devList[0]
	err = dev.Init(compute.ProgramSource{Name: "broken", Source: "__kernel void broken( {"})
	var buildErr *compute.BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected a *compute.BuildError; got %v", err)
	}
	if buildErr.Log == "" {
		t.Fatal("expected build log to be populated")
	}
}
