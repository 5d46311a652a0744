package renderer

import (
	"time"

	"github.com/lumenrt/lumen/tracer"
)

type FrameStats struct {
	// Number of frames dispatched since the renderer was created.
	Frame uint32

	// The averaging divisor used for the frame.
	Ticks uint32

	// True if accumulation restarted with this frame.
	Restarted bool

	// True if the scene was uploaded before this frame.
	Uploaded bool

	// True if MaxTicks was reached and no frame was dispatched.
	Converged bool

	// Tracer timings.
	Tracer tracer.Stats

	// Total render time for entire frame.
	RenderTime time.Duration
}
