// Package tracer drives the progressive ray tracing kernels on a compute
// device. Every frame the render kernel adds one sample set per pixel to a
// persistent canvas and the average kernel turns the canvas into 8-bit ARGB
// pixels by dividing with the number of frames accumulated since the last
// canvas clear.
package tracer

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lumenrt/lumen/compute"
	"github.com/lumenrt/lumen/log"
	"github.com/lumenrt/lumen/scene"
)

// Per-pixel buffer element sizes in bytes.
const (
	sizeofCanvasPixel = 16 // float4
	sizeofOutputPixel = 4  // uchar4
)

//go:embed CL/tracer.cl
var defaultProgram string

var logger = log.New("tracer")

type options struct {
	programPath string
	program     compute.ProgramSource
}

// A tracer option.
type Option func(*options)

// Load the kernel program from a file. The file's directory is used as the
// compiler include path.
func WithProgram(path string) Option {
	return func(opts *options) {
		opts.programPath = path
	}
}

// Use the supplied kernel program source.
func WithProgramSource(name, source string) Option {
	return func(opts *options) {
		opts.program = compute.ProgramSource{Name: name, Source: source}
	}
}

func (opts *options) resolveProgram() (compute.ProgramSource, error) {
	if opts.programPath == "" {
		return opts.program, nil
	}

	absPath, err := filepath.Abs(opts.programPath)
	if err != nil {
		return compute.ProgramSource{}, err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return compute.ProgramSource{}, fmt.Errorf("tracer: could not load kernel program: %w", err)
	}
	return compute.ProgramSource{
		Name:       filepath.Base(absPath),
		Source:     string(data),
		IncludeDir: filepath.Dir(absPath),
	}, nil
}

// Timings for the last scene update and frame. Kernel times measure the
// enqueue calls; device execution time is part of ReadbackTime since the
// read-back waits for all queued work.
type Stats struct {
	UploadTime   time.Duration
	TraceTime    time.Duration
	AverageTime  time.Duration
	ReadbackTime time.Duration

	// Number of scene buffers replaced by the last scene update.
	Reallocations int
}

// Total time spent in the last Render call.
func (s Stats) FrameTime() time.Duration {
	return s.TraceTime + s.AverageTime + s.ReadbackTime
}

// The compute dispatcher. A Tracer owns the device, its kernels and every
// device buffer. It is not safe for concurrent use.
type Tracer struct {
	// Frame parameters bound to the render kernel on every Render call.
	RenderData RenderData

	// Scene parameters bound to the render kernel on every UpdateScene call.
	SceneData SceneData

	device  compute.Device
	width   uint32
	height  uint32
	buffers *bufferSet
	kernels []compute.Kernel
	stats   Stats
}

// Initialize the device, build the kernel program and allocate the frame
// and scene buffers. A failed program build returns an error wrapping a
// *compute.BuildError.
func New(dev compute.Device, width, height uint32, opts ...Option) (*Tracer, error) {
	if width == 0 || height == 0 {
		return nil, ErrInvalidDimensions
	}

	cfg := &options{
		program: compute.ProgramSource{Name: "tracer.cl", Source: defaultProgram},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	program, err := cfg.resolveProgram()
	if err != nil {
		return nil, err
	}

	tr := &Tracer{
		RenderData: DefaultRenderData(width, height),
		SceneData:  DefaultSky(),
		device:     dev,
		width:      width,
		height:     height,
	}

	if err = dev.Init(program); err != nil {
		var buildErr *compute.BuildError
		if errors.As(err, &buildErr) {
			logger.Errorf("could not build %s for device %s:\n%s", program.Name, dev.Name(), buildErr.Log)
		}
		tr.Close()
		return nil, fmt.Errorf("tracer: could not initialize device %s: %w", dev.Name(), err)
	}

	// Load all tracer kernels
	tr.kernels = make([]compute.Kernel, numKernels)
	for kType := kernelType(0); kType < numKernels; kType++ {
		tr.kernels[kType], err = dev.Kernel(kType.String())
		if err != nil {
			tr.Close()
			return nil, err
		}
	}

	tr.buffers, err = newBufferSet(dev, width, height)
	if err != nil {
		tr.Close()
		return nil, fmt.Errorf("tracer: could not allocate buffers: %w", err)
	}

	// Bind the arguments that stay valid for the tracer lifetime. Scene
	// buffers and the scene block get re-bound by UpdateScene.
	err = tr.kernels[renderKernel].SetArg(renderArgCanvas, tr.buffers.Canvas)
	if err == nil {
		err = tr.bindScene()
	}
	if err == nil {
		err = tr.kernels[averageKernel].SetArgs(tr.buffers.Canvas, tr.buffers.Output)
	}
	if err != nil {
		tr.Close()
		return nil, err
	}

	logger.Noticef("initialized %dx%d tracer on device %s", width, height, dev.Name())
	return tr, nil
}

// Get the frame width.
func (tr *Tracer) Width() uint32 {
	return tr.width
}

// Get the frame height.
func (tr *Tracer) Height() uint32 {
	return tr.height
}

// Get the device name.
func (tr *Tracer) DeviceName() string {
	return tr.device.Name()
}

// Bind the scene buffers and the SceneData block.
func (tr *Tracer) bindScene() error {
	k := tr.kernels[renderKernel]
	if err := k.SetArg(renderArgShapes, tr.buffers.Shapes.buf); err != nil {
		return err
	}
	if err := k.SetArg(renderArgTriangles, tr.buffers.Triangles.buf); err != nil {
		return err
	}
	if err := k.SetArg(renderArgMaterials, tr.buffers.Materials.buf); err != nil {
		return err
	}
	return k.SetArg(renderArgSceneData, &tr.SceneData)
}

// Upload scene collections to the device. Empty collections are skipped and
// leave the corresponding device buffer untouched. The scene buffers and the
// SceneData block are re-bound on every call since a reallocated buffer is a
// new device handle.
func (tr *Tracer) UpdateScene(shapes []scene.Shape, triangles []scene.Triangle, materials []scene.Material) error {
	start := time.Now()
	tr.stats.Reallocations = 0

	uploads := []struct {
		name   string
		upload func() (bool, error)
	}{
		{"shapes", func() (bool, error) { return tr.buffers.Shapes.upload(shapes) }},
		{"triangles", func() (bool, error) { return tr.buffers.Triangles.upload(triangles) }},
		{"materials", func() (bool, error) { return tr.buffers.Materials.upload(materials) }},
	}
	for _, u := range uploads {
		reallocated, err := u.upload()
		if err != nil {
			return fmt.Errorf("tracer: could not upload %s: %w", u.name, err)
		}
		if reallocated {
			tr.stats.Reallocations++
			logger.Debugf("reallocated %s buffer", u.name)
		}
	}

	tr.SceneData.NumShapes = int32(len(shapes))
	if err := tr.bindScene(); err != nil {
		return err
	}

	tr.stats.UploadTime = time.Since(start)
	logger.Debugf(
		"uploaded scene: %d shapes, %d triangles, %d materials in %s",
		len(shapes), len(triangles), len(materials), tr.stats.UploadTime,
	)
	return nil
}

// Zero-fill the accumulation canvas.
func (tr *Tracer) ClearCanvas() error {
	return tr.buffers.Canvas.Clear()
}

// Trace a frame into the canvas, average it by ticksUnchanged and read the
// ARGB result into out. The render and average kernels share the same
// in-order queue so the average kernel always sees the finished trace pass.
func (tr *Tracer) Render(ticksUnchanged uint32, out []byte) error {
	if ticksUnchanged == 0 {
		return ErrInvalidTickCount
	}
	pixels := int(tr.width) * int(tr.height)
	if len(out) != pixels*sizeofOutputPixel {
		return fmt.Errorf("%w: expected %d bytes; got %d", ErrInvalidOutputBuffer, pixels*sizeofOutputPixel, len(out))
	}

	tick := time.Now()
	k := tr.kernels[renderKernel]
	if err := k.SetArg(renderArgRenderData, &tr.RenderData); err != nil {
		return err
	}
	if err := k.Exec1D(0, pixels, 0); err != nil {
		return err
	}
	tr.stats.TraceTime = time.Since(tick)

	tick = time.Now()
	k = tr.kernels[averageKernel]
	if err := k.SetArg(averageArgTicks, ticksUnchanged); err != nil {
		return err
	}
	if err := k.Exec1D(0, pixels, 0); err != nil {
		return err
	}
	tr.stats.AverageTime = time.Since(tick)

	tick = time.Now()
	if err := tr.buffers.Output.ReadData(0, 0, len(out), out); err != nil {
		return err
	}
	tr.stats.ReadbackTime = time.Since(tick)

	return nil
}

// Get the timings of the last update and frame.
func (tr *Tracer) Stats() Stats {
	return tr.stats
}

// Release kernels, buffers and the device.
func (tr *Tracer) Close() {
	for _, kernel := range tr.kernels {
		if kernel != nil {
			kernel.Release()
		}
	}
	tr.kernels = nil

	if tr.buffers != nil {
		tr.buffers.release()
		tr.buffers = nil
	}

	if tr.device != nil {
		tr.device.Close()
		tr.device = nil
	}
}
