package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lumenrt/lumen/compute/opencl"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List available opencl devices.
func ListDevices(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(ctx, cfg)

	platforms, err := opencl.GetPlatformInfo()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writePlatformTable(&buf, platforms)
	logger.Noticef("system provides %d opencl platform(s)\n%s", len(platforms), buf.String())
	return nil
}

func writePlatformTable(w io.Writer, platforms []opencl.PlatformInfo) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Platform", "Version", "Device", "Type", "Compute units", "Clock", "Speed"})
	for pIdx, platformInfo := range platforms {
		for _, device := range platformInfo.Devices {
			table.Append([]string{
				fmt.Sprintf("%02d %s", pIdx, platformInfo.Name),
				platformInfo.Version,
				device.Name,
				device.Type.String(),
				fmt.Sprintf("%d", device.ComputeUnits),
				fmt.Sprintf("%d Mhz", device.ClockSpeed),
				fmt.Sprintf("%d GFlops", device.Speed),
			})
		}
	}
	table.Render()
}
