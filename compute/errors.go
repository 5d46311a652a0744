package compute

import (
	"errors"
	"fmt"
)

var (
	ErrBackendUnavailable = errors.New("compute: backend not available in this build")
	ErrEmptyData          = errors.New("compute: empty data slice")
	ErrInsufficientSpace  = errors.New("compute: insufficient buffer space")
)

// Returned by Device.Init when the program fails to build.
type BuildError struct {
	Device  string
	Message string

	// Compiler output.
	Log string
}

func (e *BuildError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("compute device (%s): %s", e.Device, e.Message)
	}
	return fmt.Sprintf("compute device (%s): %s:\n%s", e.Device, e.Message, e.Log)
}
