package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenrt/lumen/types"
)

func TestAccumulationCounter(t *testing.T) {
	var acc Accumulation
	assert.EqualValues(t, 1, acc.Ticks())

	for i := 0; i < 4; i++ {
		acc.Advance()
	}
	assert.EqualValues(t, 5, acc.Ticks())

	acc.Restart()
	assert.EqualValues(t, 1, acc.Ticks())
}

func TestChangeDetector(t *testing.T) {
	var det ChangeDetector
	rd := DefaultRenderData(4, 4)
	sd := DefaultSky()

	assert.True(t, det.Changed(rd, sd, 1), "first call must report a change")
	assert.False(t, det.Changed(rd, sd, 1))

	rd.Time, rd.Tick = 1234, 7
	assert.False(t, det.Changed(rd, sd, 1), "time and tick must be ignored")

	specs := []struct {
		descr  string
		mutate func(*RenderData, *SceneData, *uint64)
	}{
		{"camera", func(rd *RenderData, _ *SceneData, _ *uint64) { rd.CameraToWorld = types.Translate3D(0, 0, 1) }},
		{"samples", func(rd *RenderData, _ *SceneData, _ *uint64) { rd.NumSamples++ }},
		{"debug toggle", func(rd *RenderData, _ *SceneData, _ *uint64) { rd.ShowNormals = ToBool32(true) }},
		{"sky", func(_ *RenderData, sd *SceneData, _ *uint64) { sd.SunIntensity = 3 }},
		{"scene revision", func(_ *RenderData, _ *SceneData, rev *uint64) { *rev++ }},
	}

	for _, spec := range specs {
		det.Reset()
		rd, sd, rev := DefaultRenderData(4, 4), DefaultSky(), uint64(1)
		det.Changed(rd, sd, rev)

		spec.mutate(&rd, &sd, &rev)
		assert.True(t, det.Changed(rd, sd, rev), spec.descr)
		assert.False(t, det.Changed(rd, sd, rev), spec.descr)
	}
}
