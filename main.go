package main

import (
	"fmt"
	"os"

	"github.com/lumenrt/lumen/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	renderFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 900,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 562,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: 4,
			Usage: "samples per pixel and frame",
		},
		cli.IntFlag{
			Name:  "num-bounces",
			Value: 10,
			Usage: "number of indirect ray bounces",
		},
		cli.BoolFlag{
			Name:  "normals",
			Usage: "render surface normals instead of radiance",
		},
		cli.StringFlag{
			Name:  "device",
			Value: "all",
			Usage: "opencl device type to use (cpu, gpu or all)",
		},
		cli.StringSliceFlag{
			Name:  "blacklist, b",
			Value: &cli.StringSlice{},
			Usage: "blacklist opencl device whose names contain this value",
		},
	}

	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "progressive path tracing on opencl devices"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load render settings from a TOML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render the demo scene by accumulating a fixed number of progressive frames and
write the result to an image file. The image format is selected by the file
extension (png, bmp, tiff or ppm).`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "ticks, t",
					Value: 16,
					Usage: "number of frames to accumulate",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, renderFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "preview",
			Usage: "render progressively until interrupted",
			Description: `
Keep accumulating frames and periodically write the image to disk. When a
configuration file is specified it is watched for changes; edits are applied
on the fly and restart accumulation.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "ticks, t",
					Usage: "stop after accumulating this many frames; 0 renders until interrupted",
				},
				cli.IntFlag{
					Name:  "every",
					Value: 8,
					Usage: "write the image every N accumulated frames",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "preview.png",
					Usage: "image filename for the preview",
				},
			}, renderFlags...),
			Action: cmd.RenderPreview,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
