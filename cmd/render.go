package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumenrt/lumen/compute/opencl"
	"github.com/lumenrt/lumen/config"
	"github.com/lumenrt/lumen/renderer"
	"github.com/lumenrt/lumen/tracer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var errNoDevices = errors.New("no opencl devices match the device filters")

// Load the configuration file (if one was specified) and apply command-line
// overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet("width") {
		cfg.Render.Width = uint32(ctx.Int("width"))
	}
	if ctx.IsSet("height") {
		cfg.Render.Height = uint32(ctx.Int("height"))
	}
	if ctx.IsSet("spp") {
		cfg.Render.Samples = uint32(ctx.Int("spp"))
	}
	if ctx.IsSet("num-bounces") {
		cfg.Render.Bounces = uint32(ctx.Int("num-bounces"))
	}
	if ctx.IsSet("ticks") {
		cfg.Render.MaxTicks = uint32(ctx.Int("ticks"))
	}
	if ctx.IsSet("normals") {
		cfg.Render.ShowNormals = ctx.Bool("normals")
	}
	if ctx.IsSet("device") {
		cfg.Device.Type = ctx.String("device")
	}
	if ctx.IsSet("blacklist") {
		cfg.Device.Blacklist = ctx.StringSlice("blacklist")
	}

	return cfg, cfg.Validate()
}

// Select a device, compile the tracer program and attach the demo scene.
func setupRenderer(cfg config.Config) (*renderer.Progressive, error) {
	devices, err := opencl.SelectDevices(cfg.DeviceType(), cfg.Device.Match, cfg.Device.Blacklist)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, errNoDevices
	}

	// A single device renders the whole frame; release the rest.
	dev := devices[0]
	for _, other := range devices[1:] {
		logger.Infof("skipping device %s", other.Name())
		other.Close()
	}

	var opts []tracer.Option
	if cfg.Device.Program != "" {
		opts = append(opts, tracer.WithProgram(cfg.Device.Program))
	}

	logger.Noticef("compiling opencl kernels for device %s", dev.Name())
	start := time.Now()
	tr, err := tracer.New(dev, cfg.Render.Width, cfg.Render.Height, opts...)
	if err != nil {
		return nil, err
	}
	logger.Infof("setup tracer in %d ms", time.Since(start).Milliseconds())

	sc, camera := demoScene()
	r, err := renderer.NewProgressive(tr, sc, camera, cfg.RendererOptions())
	if err != nil {
		tr.Close()
		return nil, err
	}
	return r, nil
}

// Render a still frame by accumulating a fixed number of progressive frames.
func RenderFrame(ctx *cli.Context) error {
	if err := checkOutput(ctx.String("out")); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(ctx, cfg)
	if cfg.Render.MaxTicks == 0 {
		cfg.Render.MaxTicks = uint32(ctx.Int("ticks"))
	}

	r, err := setupRenderer(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %d frames at %dx%d", cfg.Render.MaxTicks, cfg.Render.Width, cfg.Render.Height)
	var stats []renderer.FrameStats
	for {
		more, err := r.Render()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		stats = append(stats, r.Stats())
	}

	displayFrameStats(stats)
	return r.Save(ctx.String("out"))
}

// Render progressively until interrupted, periodically writing the
// accumulated image. Edits to the configuration file are applied on the fly
// and restart accumulation.
func RenderPreview(ctx *cli.Context) error {
	if err := checkOutput(ctx.String("out")); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(ctx, cfg)

	r, err := setupRenderer(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	reloads := make(chan config.Config, 1)
	if path := ctx.GlobalString("config"); path != "" {
		watcher, err := config.Watch(path, func(updated config.Config, err error) {
			if err != nil {
				logger.Warningf("ignoring config update: %v", err)
				return
			}
			select {
			case reloads <- updated:
			default:
			}
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := ctx.String("out")
	every := ctx.Int("every")
	if every <= 0 {
		every = 1
	}

	logger.Noticef("rendering preview to %s; press ctrl+c to stop", out)
	for {
		select {
		case <-sigCtx.Done():
			logger.Notice("interrupted")
			return r.Save(out)
		case updated := <-reloads:
			if err := r.SetOptions(updated.RendererOptions()); err != nil {
				logger.Warningf("ignoring config update: %v", err)
			} else {
				logger.Notice("config changed; restarting accumulation")
			}
		default:
		}

		more, err := r.Render()
		if err != nil {
			return err
		}
		if !more {
			logger.Noticef("reached %d accumulated frames", r.Accumulated())
			return r.Save(out)
		}

		if stats := r.Stats(); stats.Ticks%uint32(every) == 0 {
			if err := r.Save(out); err != nil {
				return err
			}
			logger.Infof("frame %d: %d accumulated, %s", stats.Frame, stats.Ticks, stats.RenderTime)
		}
	}
}

func displayFrameStats(stats []renderer.FrameStats) {
	var buf bytes.Buffer
	writeFrameStats(&buf, stats)
	logger.Noticef("frame statistics\n%s", buf.String())
}

func writeFrameStats(w io.Writer, stats []renderer.FrameStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Ticks", "Restarted", "Upload", "Trace", "Average", "Read back", "Render time"})

	var total time.Duration
	for _, stat := range stats {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Frame),
			fmt.Sprintf("%d", stat.Ticks),
			fmt.Sprintf("%t", stat.Restarted),
			stat.Tracer.UploadTime.String(),
			stat.Tracer.TraceTime.String(),
			stat.Tracer.AverageTime.String(),
			stat.Tracer.ReadbackTime.String(),
			stat.RenderTime.String(),
		})
		total += stat.RenderTime
	}
	table.SetFooter([]string{"", "", "", "", "", "", "TOTAL", total.String()})

	table.Render()
}

// Output image formats supported by the render commands.
func checkOutput(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp", ".tif", ".tiff", ".ppm":
		return nil
	}
	return fmt.Errorf("%w: %q", renderer.ErrUnsupportedImageType, path)
}
