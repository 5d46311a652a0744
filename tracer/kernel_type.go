package tracer

import "fmt"

type kernelType uint8

// The list of kernels that implement the tracer.
const (
	// Trace one sample set per pixel and add it to the canvas.
	renderKernel kernelType = iota
	// Divide the canvas by the tick count and pack to ARGB bytes.
	averageKernel
	//
	numKernels
)

// Implements Stringer; map kernel type to the kernel name as defined in the CL source files.
func (kt kernelType) String() string {
	switch kt {
	case renderKernel:
		return "render"
	case averageKernel:
		return "average"
	}
	panic(fmt.Sprintf("tracer: unsupported kernel type %d", kt))
}

// Argument slots of the render kernel.
const (
	renderArgRenderData uint32 = iota
	renderArgSceneData
	renderArgCanvas
	renderArgShapes
	renderArgTriangles
	renderArgMaterials
)

// Argument slots of the average kernel.
const (
	averageArgCanvas uint32 = iota
	averageArgOutput
	averageArgTicks
)
