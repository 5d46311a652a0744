package renderer

import "errors"

var (
	ErrTracerNotDefined     = errors.New("renderer: no tracer attached")
	ErrSceneNotDefined      = errors.New("renderer: no scene defined")
	ErrCameraNotDefined     = errors.New("renderer: no camera defined")
	ErrNoFrame              = errors.New("renderer: no frame has been rendered yet")
	ErrFrameSizeChanged     = errors.New("renderer: frame dimensions cannot change after construction")
	ErrUnsupportedImageType = errors.New("renderer: unsupported image format")
)
