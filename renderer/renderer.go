// Package renderer drives a tracer frame by frame: it syncs the camera and
// scene to the device, restarts accumulation whenever anything that affects
// the image changes and exports the accumulated frames.
package renderer

import (
	"time"

	"github.com/lumenrt/lumen/log"
	"github.com/lumenrt/lumen/scene"
	"github.com/lumenrt/lumen/tracer"
)

var logger = log.New("renderer")

// A progressive renderer. It is single-threaded; Render performs the scene
// update and the frame dispatch strictly in sequence.
type Progressive struct {
	tracer *tracer.Tracer
	scene  *scene.Scene
	camera *scene.Camera
	opts   Options

	acc      tracer.Accumulation
	detector tracer.ChangeDetector

	// Scene state that was last uploaded to the device.
	uploaded         bool
	uploadedRevision uint64
	uploadedSky      tracer.SceneData

	pixels []byte
	frame  uint32
	start  time.Time
	stats  FrameStats
}

// Create a progressive renderer for the given tracer, scene and camera. The
// renderer takes ownership of the tracer.
func NewProgressive(tr *tracer.Tracer, sc *scene.Scene, camera *scene.Camera, opts Options) (*Progressive, error) {
	switch {
	case tr == nil:
		return nil, ErrTracerNotDefined
	case sc == nil:
		return nil, ErrSceneNotDefined
	case camera == nil:
		return nil, ErrCameraNotDefined
	}

	if opts.FrameW == 0 && opts.FrameH == 0 {
		opts.FrameW, opts.FrameH = tr.Width(), tr.Height()
	}

	r := &Progressive{
		tracer: tr,
		scene:  sc,
		camera: camera,
		pixels: make([]byte, int(tr.Width())*int(tr.Height())*4),
		start:  time.Now(),
	}

	if err := r.SetOptions(opts); err != nil {
		return nil, err
	}
	return r, nil
}

// Replace the render options. The change takes effect on the next frame and
// restarts accumulation if it affects the image.
func (r *Progressive) SetOptions(opts Options) error {
	if opts.FrameW != r.tracer.Width() || opts.FrameH != r.tracer.Height() {
		return ErrFrameSizeChanged
	}
	if opts.FOV <= 0 {
		opts.FOV = tracer.DefaultFOV
	}

	r.opts = opts
	opts.apply(&r.tracer.RenderData, &r.tracer.SceneData)
	return nil
}

// Get the active options.
func (r *Progressive) Options() Options {
	return r.opts
}

// Force the next frame to restart accumulation and re-upload the scene.
func (r *Progressive) Invalidate() {
	r.uploaded = false
	r.detector.Reset()
}

// Render the next frame. It returns false without dispatching any device
// work once MaxTicks frames have been accumulated.
func (r *Progressive) Render() (bool, error) {
	start := time.Now()
	stats := FrameStats{Frame: r.frame}

	rd := &r.tracer.RenderData
	rd.CameraToWorld = r.camera.Matrix()

	changed := r.detector.Changed(*rd, r.tracer.SceneData, r.scene.Revision())
	if changed {
		// Forget the snapshot on failure so the next frame retries the
		// upload and restart.
		if err := r.syncScene(); err != nil {
			r.detector.Reset()
			return false, err
		}
		if err := r.tracer.ClearCanvas(); err != nil {
			r.detector.Reset()
			return false, err
		}
		r.acc.Restart()
		stats.Restarted = true
		stats.Uploaded = !r.uploaded || r.uploadedRevision != r.scene.Revision()
		r.markUploaded()

		// The upload updates the shape count; snapshot the post-upload state.
		r.detector.Changed(*rd, r.tracer.SceneData, r.scene.Revision())
		logger.Debugf("restarting accumulation at frame %d", r.frame)
	}

	ticks := r.acc.Ticks()
	if r.opts.MaxTicks > 0 && ticks > r.opts.MaxTicks {
		stats.Ticks = ticks - 1
		stats.Converged = true
		r.stats = stats
		return false, nil
	}

	if r.opts.Seed != 0 {
		rd.Time = r.opts.Seed
	} else {
		rd.Time = uint32(time.Since(r.start).Milliseconds())
	}
	rd.Tick = r.frame

	if err := r.tracer.Render(ticks, r.pixels); err != nil {
		return false, err
	}

	r.acc.Advance()
	r.frame++

	stats.Ticks = ticks
	stats.Tracer = r.tracer.Stats()
	stats.RenderTime = time.Since(start)
	r.stats = stats
	return true, nil
}

// Upload the scene if it changed since the last upload. Sky edits only need
// the SceneData block to be re-bound, which UpdateScene also takes care of.
func (r *Progressive) syncScene() error {
	sceneDirty := !r.uploaded || r.uploadedRevision != r.scene.Revision()
	skyDirty := r.uploadedSky != r.tracer.SceneData
	if !sceneDirty && !skyDirty {
		return nil
	}

	if sceneDirty {
		if err := r.scene.Validate(); err != nil {
			return err
		}
		return r.tracer.UpdateScene(r.scene.Shapes, r.scene.Triangles, r.scene.Materials)
	}
	return r.tracer.UpdateScene(r.scene.Shapes, nil, nil)
}

func (r *Progressive) markUploaded() {
	r.uploaded = true
	r.uploadedRevision = r.scene.Revision()
	r.uploadedSky = r.tracer.SceneData
}

// Get the number of frames accumulated since the last restart.
func (r *Progressive) Accumulated() uint32 {
	return r.acc.Ticks() - 1
}

// Get the last frame as ARGB bytes. The slice is reused by the next frame.
func (r *Progressive) Pixels() []byte {
	return r.pixels
}

// Get render statistics.
func (r *Progressive) Stats() FrameStats {
	return r.stats
}

// Shutdown renderer and the attached tracer.
func (r *Progressive) Close() {
	if r.tracer != nil {
		r.tracer.Close()
		r.tracer = nil
	}
}
