//go:build opencl

package opencl

import (
	"unsafe"

	"github.com/achilleasa/gopencl/v1.2/cl"

	"github.com/lumenrt/lumen/compute"
)

const (
	platformBufferSize = 100
	deviceBufferSize   = 100
	dataBufferSize     = 1024
)

type platformDevice struct {
	info DeviceInfo
	id   cl.DeviceId
}

func clString(data []byte, dataLen uint64) string {
	if dataLen == 0 {
		return ""
	}
	return string(data[0 : dataLen-1])
}

func enumerate() ([]PlatformInfo, [][]platformDevice, error) {
	pids := make([]cl.PlatformID, platformBufferSize)
	data := make([]byte, dataBufferSize)
	dataLen := uint64(0)

	devices := make([]cl.DeviceId, deviceBufferSize)
	deviceCount := uint32(0)

	pidCount := uint32(0)
	cl.GetPlatformIDs(uint32(len(pids)), &pids[0], &pidCount)

	infoList := make([]PlatformInfo, int(pidCount))
	devList := make([][]platformDevice, int(pidCount))
	for pIdx := 0; pIdx < int(pidCount); pIdx++ {
		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_PROFILE, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Profile = clString(data, dataLen)

		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_VERSION, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Version = clString(data, dataLen)

		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Name = clString(data, dataLen)

		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_VENDOR, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Vendor = clString(data, dataLen)

		cl.GetPlatformInfo(pids[pIdx], cl.PLATFORM_EXTENSIONS, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
		infoList[pIdx].Extensions = clString(data, dataLen)

		appendDevices := func(devType compute.DeviceType) error {
			for dIdx := 0; dIdx < int(deviceCount); dIdx++ {
				cl.GetDeviceInfo(devices[dIdx], cl.DEVICE_NAME, dataBufferSize, unsafe.Pointer(&data[0]), &dataLen)
				pd := platformDevice{
					info: DeviceInfo{Name: clString(data, dataLen), Type: devType},
					id:   devices[dIdx],
				}
				if err := detectSpeed(pd.id, &pd.info); err != nil {
					return err
				}
				devList[pIdx] = append(devList[pIdx], pd)
				infoList[pIdx].Devices = append(infoList[pIdx].Devices, pd.info)
			}
			return nil
		}

		// Enumerate CPU devices
		deviceCount = 0
		cl.GetDeviceIDs(pids[pIdx], cl.DEVICE_TYPE_CPU, uint32(deviceBufferSize), &devices[0], &deviceCount)
		if err := appendDevices(compute.CpuDevice); err != nil {
			return nil, nil, err
		}

		// Enumerate GPU devices
		deviceCount = 0
		cl.GetDeviceIDs(pids[pIdx], cl.DEVICE_TYPE_GPU, uint32(deviceBufferSize), &devices[0], &deviceCount)
		if err := appendDevices(compute.GpuDevice); err != nil {
			return nil, nil, err
		}
	}

	return infoList, devList, nil
}

// Calculate theoretical device speed as: compute units * clock speed.
func detectSpeed(id cl.DeviceId, info *DeviceInfo) error {
	errCode := cl.GetDeviceInfo(id, cl.DEVICE_MAX_COMPUTE_UNITS, 4, unsafe.Pointer(&info.ComputeUnits), nil)
	if errCode != cl.SUCCESS {
		return newError(info.Name, "could not query MAX_COMPUTE_UNITS", errCode)
	}
	errCode = cl.GetDeviceInfo(id, cl.DEVICE_MAX_CLOCK_FREQUENCY, 4, unsafe.Pointer(&info.ClockSpeed), nil)
	if errCode != cl.SUCCESS {
		return newError(info.Name, "could not query MAX_CLOCK_FREQUENCY", errCode)
	}
	info.Speed = info.ComputeUnits * info.ClockSpeed / 1000
	return nil
}

// Get information about supported opencl platforms and devices.
func GetPlatformInfo() ([]PlatformInfo, error) {
	infoList, _, err := enumerate()
	return infoList, err
}

// Scan all available opencl platforms and select devices that match the
// given query. Devices whose name contains any blacklist entry are skipped.
// The returned devices must be initialized before use.
func SelectDevices(typeMask compute.DeviceType, matchName string, blacklist []string) ([]compute.Device, error) {
	_, devList, err := enumerate()
	if err != nil {
		return nil, err
	}

	list := make([]compute.Device, 0)
	for _, platformDevs := range devList {
		for _, pd := range platformDevs {
			if !matchDevice(pd.info, typeMask, matchName, blacklist) {
				continue
			}
			list = append(list, &Device{info: pd.info, id: pd.id})
		}
	}
	return list, nil
}
