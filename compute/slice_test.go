package compute

import (
	"errors"
	"strings"
	"testing"
)

func TestSliceData(t *testing.T) {
	data := []float32{1, 2, 3}
	ptr, n := SliceData(data)
	if n != 12 {
		t.Fatalf("expected 12 bytes; got %d", n)
	}
	if ptr == nil {
		t.Fatal("expected non-nil pointer")
	}

	if _, n = SliceData([]uint32{}); n != 0 {
		t.Fatalf("expected 0 bytes for empty slice; got %d", n)
	}

	b := SliceBytes([]uint32{0x04030201})
	if len(b) != 4 || b[0] != 1 || b[3] != 4 {
		t.Fatalf("unexpected byte view %v", b)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected SliceData to panic for non-slice arguments")
		}
	}()
	SliceData(42)
}

func TestStructData(t *testing.T) {
	type block struct {
		A, B uint32
	}

	if _, n := StructData(&block{}); n != 8 {
		t.Fatalf("expected struct size 8; got %d", n)
	}
	if _, n := StructData(block{}); n != 0 {
		t.Fatalf("expected 0 for non-pointer; got %d", n)
	}
	var nilBlock *block
	if _, n := StructData(nilBlock); n != 0 {
		t.Fatalf("expected 0 for nil pointer; got %d", n)
	}
}

func TestBuildError(t *testing.T) {
	var err error = &BuildError{Device: "gpu0", Message: "could not build program", Log: "tracer.cl:3: error"}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatal("expected errors.As to match *BuildError")
	}
	if !strings.Contains(err.Error(), "tracer.cl:3: error") {
		t.Fatalf("expected build log in error message; got %q", err.Error())
	}
}

func TestParseDeviceType(t *testing.T) {
	specs := []struct {
		in  string
		exp DeviceType
	}{
		{"cpu", CpuDevice},
		{"gpu", GpuDevice},
		{"all", AllDevices},
		{"", AllDevices},
	}
	for _, spec := range specs {
		got, err := ParseDeviceType(spec.in)
		if err != nil || got != spec.exp {
			t.Errorf("ParseDeviceType(%q) = %v, %v; expected %v", spec.in, got, err, spec.exp)
		}
	}
	if _, err := ParseDeviceType("fpga"); err == nil {
		t.Error("expected error for unknown device type")
	}
}
