package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/lumenrt/lumen/types"
)

// Tolerance used when checking whether a stored bounding box still covers
// the transformed model vertices.
const boundsEpsilon = 1e-4

// Create a model for the given triangle range with an identity transform and
// a freshly computed bounding box.
func NewModel(triangles []Triangle, index, count uint32) (Model, error) {
	m := Model{
		TriangleIndex: index,
		NumTriangles:  count,
		Transform:     types.Ident4(),
	}

	if err := m.ComputeBoundingBox(triangles); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) checkRange(triangles []Triangle) error {
	end := uint64(m.TriangleIndex) + uint64(m.NumTriangles)
	if end > uint64(len(triangles)) {
		return fmt.Errorf("%w: [%d, %d) exceeds pool of %d triangles", ErrTriangleRangeOutOfBounds, m.TriangleIndex, end, len(triangles))
	}
	return nil
}

// Recompute the world-space bounding box by transforming every vertex of the
// model's triangle range. This must be called after any change to Transform.
func (m *Model) ComputeBoundingBox(triangles []Triangle) error {
	if err := m.checkRange(triangles); err != nil {
		return err
	}

	inf := math32.Inf(1)
	bMin := types.Vec3{inf, inf, inf}
	bMax := types.Vec3{-inf, -inf, -inf}

	for _, tri := range triangles[m.TriangleIndex : m.TriangleIndex+m.NumTriangles] {
		for _, v := range tri.Vertices {
			p := m.Transform.MulPoint(v.Pos.Vec3())
			bMin = types.MinVec3(bMin, p)
			bMax = types.MaxVec3(bMax, p)
		}
	}

	// An empty range collapses to the model origin.
	if m.NumTriangles == 0 {
		bMin = m.Transform.Translation()
		bMax = bMin
	}

	m.BoundingMin = bMin.Vec4(0)
	m.BoundingMax = bMax.Vec4(0)
	return nil
}

// Report whether the stored bounding box still contains every transformed
// vertex of the model. A false result means the transform was edited without
// a follow-up call to ComputeBoundingBox.
func (m *Model) BoundsCover(triangles []Triangle) bool {
	if m.checkRange(triangles) != nil {
		return false
	}

	bMin, bMax := m.BoundingMin.Vec3(), m.BoundingMax.Vec3()
	for _, tri := range triangles[m.TriangleIndex : m.TriangleIndex+m.NumTriangles] {
		for _, v := range tri.Vertices {
			p := m.Transform.MulPoint(v.Pos.Vec3())
			for axis := 0; axis < 3; axis++ {
				if p[axis] < bMin[axis]-boundsEpsilon || p[axis] > bMax[axis]+boundsEpsilon {
					return false
				}
			}
		}
	}
	return true
}

// Replace the model transform with translation * rotation * scale. The
// bounding box is left untouched; call ComputeBoundingBox afterwards.
func (m *Model) SetTransform(position types.Vec3, orientation types.Quat, scale types.Vec3) {
	m.Transform = types.TRS(position, orientation, scale)
}
