package scene

import "github.com/lumenrt/lumen/types"

// Number of triangles that make up the unit box.
const BoxTriangleCount = 12

// A handle to the shared unit-box triangles. All box models reference the
// same 12 triangles and only differ in their transform. The zero value is an
// uninitialized handle; use CreateBoxTriangles to obtain a valid one.
type BoxGeometry struct {
	firstTriangle uint32
	valid         bool
}

// Append the 12 triangles of a unit box (centered at the origin, side 1) to
// the pool and return a handle to them.
func CreateBoxTriangles(pool *[]Triangle) BoxGeometry {
	first := uint32(len(*pool))

	type face struct {
		normal  types.Vec3
		corners [4]types.Vec3
	}

	// Corners are listed counter-clockwise when looking at the face
	// from outside the box.
	faces := [6]face{
		{types.Vec3{0, 0, 1}, [4]types.Vec3{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{types.Vec3{0, 0, -1}, [4]types.Vec3{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
		{types.Vec3{1, 0, 0}, [4]types.Vec3{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
		{types.Vec3{-1, 0, 0}, [4]types.Vec3{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
		{types.Vec3{0, 1, 0}, [4]types.Vec3{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
		{types.Vec3{0, -1, 0}, [4]types.Vec3{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
	}

	for _, f := range faces {
		c := f.corners
		*pool = append(*pool,
			NewFlatTriangle(f.normal, c[0], c[1], c[2]),
			NewFlatTriangle(f.normal, c[0], c[2], c[3]),
		)
	}

	return BoxGeometry{firstTriangle: first, valid: true}
}

// Returns true if the handle refers to seeded box triangles.
func (g BoxGeometry) Valid() bool {
	return g.valid
}

// Index of the first shared box triangle.
func (g BoxGeometry) TriangleIndex() uint32 {
	g.mustBeValid()
	return g.firstTriangle
}

// Create a box model centered at position with the given size. The model
// references the shared box triangles. The bounding box is derived from the
// transform directly since the geometry is a known unit cube.
//
// Panics if the handle was not obtained from CreateBoxTriangles.
func (g BoxGeometry) Model(position, size types.Vec3) Model {
	g.mustBeValid()

	m := Model{
		TriangleIndex: g.firstTriangle,
		NumTriangles:  BoxTriangleCount,
		Transform:     types.TRS(position, types.QuatIdent(), size),
	}

	half := types.Vec3{abs32(size[0]), abs32(size[1]), abs32(size[2])}.Mul(0.5)
	m.BoundingMin = position.Sub(half).Vec4(0)
	m.BoundingMax = position.Add(half).Vec4(0)
	return m
}

func (g BoxGeometry) mustBeValid() {
	if !g.valid {
		panic(ErrBoxGeometryNotInitialized)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
