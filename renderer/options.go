package renderer

import (
	"github.com/lumenrt/lumen/tracer"
	"github.com/lumenrt/lumen/types"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples per pixel and frame.
	SamplesPerPixel uint32

	// Number of indirect bounces.
	NumBounces uint32

	// Field of view in degrees.
	FOV float32

	// Render surface normals instead of radiance.
	ShowNormals bool

	// Stop accumulating after this many frames; 0 accumulates forever.
	MaxTicks uint32

	// If non-zero, used instead of the wall clock for seeding the kernel
	// random number generator.
	Seed uint32

	// Sky model; a nil value keeps the tracer default.
	Sky *Sky
}

// Sky and sun parameters.
type Sky struct {
	Horizon      types.Vec3
	Zenith       types.Vec3
	Ground       types.Vec3
	SunDirection types.Vec3
	SunColor     types.Vec3
	SunFocus     float32
	SunIntensity float32
}

// Copy the render options into the tracer parameter blocks.
func (opts Options) apply(rd *tracer.RenderData, sd *tracer.SceneData) {
	rd.NumSamples = int32(opts.SamplesPerPixel)
	rd.NumBounces = int32(opts.NumBounces)
	rd.FOVScale = tracer.FOVScale(opts.FOV)
	rd.ShowNormals = tracer.ToBool32(opts.ShowNormals)

	if opts.Sky == nil {
		return
	}
	sd.HorizonColor = opts.Sky.Horizon.Vec4(0)
	sd.ZenithColor = opts.Sky.Zenith.Vec4(0)
	sd.GroundColor = opts.Sky.Ground.Vec4(0)
	sd.SunDirection = opts.Sky.SunDirection.Normalize().Vec4(0)
	sd.SunColor = opts.Sky.SunColor.Vec4(0)
	sd.SunFocus = opts.Sky.SunFocus
	sd.SunIntensity = opts.Sky.SunIntensity
}
