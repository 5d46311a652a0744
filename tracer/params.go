package tracer

import (
	"github.com/chewxy/math32"

	"github.com/lumenrt/lumen/types"
)

// Sizes of the kernel parameter blocks in bytes.
const (
	SizeofRenderData = 112
	SizeofSceneData  = 112
)

// Render defaults.
const (
	DefaultSamples = 4
	DefaultBounces = 10
	DefaultFOV     = 90
)

// A 32-bit boolean matching the int flags used by the kernels.
type Bool32 uint32

func ToBool32(v bool) Bool32 {
	if v {
		return 1
	}
	return 0
}

func (b Bool32) Bool() bool {
	return b != 0
}

// Per-frame parameters passed by value to the render kernel.
type RenderData struct {
	Width      int32
	Height     int32
	NumSamples int32
	NumBounces int32

	AspectRatio float32

	// tan(fov / 2)
	FOVScale float32

	_ [2]uint32

	CameraToWorld types.Mat4

	// Wall clock time in milliseconds; used for seeding.
	Time uint32

	// Frame counter; used for seeding.
	Tick uint32

	// Output surface normals instead of radiance.
	ShowNormals Bool32

	_ uint32
}

// Scene-wide parameters: shape count and sky model.
type SceneData struct {
	NumShapes int32
	_         [3]int32

	HorizonColor types.Vec4
	ZenithColor  types.Vec4
	GroundColor  types.Vec4
	SunColor     types.Vec4

	// Direction towards the sun.
	SunDirection types.Vec4

	// Larger values yield a smaller sun disc.
	SunFocus     float32
	SunIntensity float32

	_ [2]float32
}

// Convert a field of view in degrees to the scale factor used by the kernel.
func FOVScale(fovDegrees float32) float32 {
	return math32.Tan(fovDegrees * math32.Pi / 360)
}

// Create the default render parameters for a frame size.
func DefaultRenderData(width, height uint32) RenderData {
	rd := RenderData{
		Width:         int32(width),
		Height:        int32(height),
		NumSamples:    DefaultSamples,
		NumBounces:    DefaultBounces,
		FOVScale:      FOVScale(DefaultFOV),
		CameraToWorld: types.Ident4(),
	}
	if height != 0 {
		rd.AspectRatio = float32(width) / float32(height)
	}
	return rd
}

// Create scene parameters with the default daylight sky.
func DefaultSky() SceneData {
	return SceneData{
		HorizonColor: types.Vec4{1, 1, 1, 0},
		ZenithColor:  types.Vec4{0.29, 0.58, 0.9, 0},
		GroundColor:  types.Vec4{0.35, 0.3, 0.35, 0},
		SunColor:     types.Vec4{1, 0.95, 0.85, 0},
		SunDirection: types.Vec3{0.4, 1, 0.3}.Normalize().Vec4(0),
		SunFocus:     500,
		SunIntensity: 10,
	}
}
