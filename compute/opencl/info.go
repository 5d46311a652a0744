// Package opencl implements the compute interfaces on top of OpenCL 1.2. The
// backend is only compiled with the opencl build tag; without it the package
// reports compute.ErrBackendUnavailable.
package opencl

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/lumenrt/lumen/compute"
)

var indentRegex = regexp.MustCompile("(?m)^")

// Information about an opencl device.
type DeviceInfo struct {
	Name string
	Type compute.DeviceType

	ComputeUnits uint32
	ClockSpeed   uint32

	// Speed estimate in GFlops.
	Speed uint32
}

// Implements Stringer.
func (d DeviceInfo) String() string {
	return fmt.Sprintf(
		"Name: %s\nType: %s\nSpecs: %d computation units, %d Mhz clock, %d GFlops approximate speed",
		d.Name,
		d.Type.String(),
		d.ComputeUnits,
		d.ClockSpeed,
		d.Speed,
	)
}

// Information about a system's opencl platform and supported devices.
type PlatformInfo struct {
	Profile    string
	Version    string
	Name       string
	Vendor     string
	Extensions string
	Devices    []DeviceInfo
}

func (pl PlatformInfo) String() string {
	var buf bytes.Buffer

	buf.WriteString(
		fmt.Sprintf(
			"Version:    %s\nName:       %s\nVendor:     %s\nExtensions: %s\nDevices:\n",
			pl.Version,
			pl.Name,
			pl.Vendor,
			pl.Extensions,
		),
	)

	for dIdx, d := range pl.Devices {
		buf.WriteString(fmt.Sprintf("  Device %02d:\n", dIdx))
		buf.WriteString(indentRegex.ReplaceAllString(d.String(), "    "))
		buf.WriteString("\n\n")
	}

	return buf.String()
}

// Check whether a device passes the type mask, name match and blacklist filters.
func matchDevice(d DeviceInfo, typeMask compute.DeviceType, matchName string, blacklist []string) bool {
	if d.Type&typeMask != d.Type {
		return false
	}

	if matchName != "" && !strings.Contains(d.Name, matchName) {
		return false
	}

	for _, bl := range blacklist {
		if bl != "" && strings.Contains(d.Name, bl) {
			return false
		}
	}
	return true
}
