//go:build !opencl

package opencl

import "github.com/lumenrt/lumen/compute"

// Get information about supported opencl platforms and devices.
func GetPlatformInfo() ([]PlatformInfo, error) {
	return nil, compute.ErrBackendUnavailable
}

// Scan all available opencl platforms and select devices that match the given query.
func SelectDevices(typeMask compute.DeviceType, matchName string, blacklist []string) ([]compute.Device, error) {
	return nil, compute.ErrBackendUnavailable
}
