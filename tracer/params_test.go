package tracer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/lumenrt/lumen/types"
)

func TestParamBlockLayout(t *testing.T) {
	var rd RenderData
	assert.EqualValues(t, SizeofRenderData, unsafe.Sizeof(rd))
	assert.EqualValues(t, 32, unsafe.Offsetof(rd.CameraToWorld))
	assert.EqualValues(t, 96, unsafe.Offsetof(rd.Time))
	assert.EqualValues(t, 104, unsafe.Offsetof(rd.ShowNormals))

	var sd SceneData
	assert.EqualValues(t, SizeofSceneData, unsafe.Sizeof(sd))
	assert.EqualValues(t, 16, unsafe.Offsetof(sd.HorizonColor))
	assert.EqualValues(t, 80, unsafe.Offsetof(sd.SunDirection))
	assert.EqualValues(t, 96, unsafe.Offsetof(sd.SunFocus))
}

func TestDefaults(t *testing.T) {
	rd := DefaultRenderData(900, 562)
	assert.InDelta(t, 900.0/562.0, rd.AspectRatio, 1e-6)
	assert.Equal(t, types.Ident4(), rd.CameraToWorld)
	assert.False(t, rd.ShowNormals.Bool())
	assert.True(t, ToBool32(true).Bool())

	sky := DefaultSky()
	assert.InDelta(t, 1.0, sky.SunDirection.Vec3().Len(), 1e-5)
	assert.EqualValues(t, 0, sky.NumShapes)
	assert.InDelta(t, 0.5773503, FOVScale(60), 1e-5)
}
