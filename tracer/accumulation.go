package tracer

import "math"

// Tracks the number of consecutive frames rendered without a camera, scene or
// parameter change. The zero value is a freshly restarted counter.
type Accumulation struct {
	framesSinceRestart uint32
}

// Get the divisor for the next frame; always >= 1.
func (a *Accumulation) Ticks() uint32 {
	return a.framesSinceRestart + 1
}

// Count a rendered frame.
func (a *Accumulation) Advance() {
	if a.framesSinceRestart < math.MaxUint32-1 {
		a.framesSinceRestart++
	}
}

// Reset the counter so that the next frame is averaged on its own.
func (a *Accumulation) Restart() {
	a.framesSinceRestart = 0
}

// Detects changes that invalidate the accumulated canvas. The Time and Tick
// fields of RenderData change every frame and are ignored.
type ChangeDetector struct {
	primed   bool
	render   RenderData
	scene    SceneData
	revision uint64
}

// Compare against the previous snapshot and store the new one. The first
// call always reports a change.
func (d *ChangeDetector) Changed(rd RenderData, sd SceneData, sceneRevision uint64) bool {
	rd.Time, rd.Tick = 0, 0

	if d.primed && rd == d.render && sd == d.scene && sceneRevision == d.revision {
		return false
	}

	d.primed = true
	d.render = rd
	d.scene = sd
	d.revision = sceneRevision
	return true
}

// Forget the stored snapshot so the next Changed call reports a change.
func (d *ChangeDetector) Reset() {
	d.primed = false
}
