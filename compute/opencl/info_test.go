package opencl

import (
	"strings"
	"testing"

	"github.com/lumenrt/lumen/compute"
)

func TestMatchDevice(t *testing.T) {
	gpu := DeviceInfo{Name: "Iris Pro", Type: compute.GpuDevice}
	cpu := DeviceInfo{Name: "Intel(R) Core(TM) i7", Type: compute.CpuDevice}

	specs := []struct {
		dev       DeviceInfo
		mask      compute.DeviceType
		match     string
		blacklist []string
		exp       bool
	}{
		{gpu, compute.AllDevices, "", nil, true},
		{gpu, compute.CpuDevice, "", nil, false},
		{cpu, compute.CpuDevice, "Core", nil, true},
		{cpu, compute.AllDevices, "Iris", nil, false},
		{gpu, compute.AllDevices, "", []string{"Iris"}, false},
		{gpu, compute.GpuDevice, "Iris", []string{""}, true},
	}

	for index, spec := range specs {
		if got := matchDevice(spec.dev, spec.mask, spec.match, spec.blacklist); got != spec.exp {
			t.Errorf("[spec %d] expected match to be %t; got %t", index, spec.exp, got)
		}
	}
}

func TestPlatformInfoString(t *testing.T) {
	pl := PlatformInfo{
		Name:    "Apple",
		Version: "OpenCL 1.2",
		Devices: []DeviceInfo{{Name: "Iris Pro", Type: compute.GpuDevice, ComputeUnits: 40}},
	}

	out := pl.String()
	if !strings.Contains(out, "  Device 00:\n    Name: Iris Pro") {
		t.Fatalf("unexpected platform description:\n%s", out)
	}
}
