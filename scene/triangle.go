package scene

import "github.com/lumenrt/lumen/types"

// Size of a packed triangle record in bytes.
const SizeofTriangle = 96

type Vertex struct {
	Normal types.Vec4
	Pos    types.Vec4
}

// A triangle from the shared triangle pool.
type Triangle struct {
	Vertices [3]Vertex
}

// Create a flat shaded triangle; all three vertices share the same normal.
func NewFlatTriangle(normal, p0, p1, p2 types.Vec3) Triangle {
	n := normal.Vec4(0)
	return Triangle{
		Vertices: [3]Vertex{
			{Normal: n, Pos: p0.Vec4(0)},
			{Normal: n, Pos: p1.Vec4(0)},
			{Normal: n, Pos: p2.Vec4(0)},
		},
	}
}

// Calculate the geometric normal from the vertex winding order.
func (t *Triangle) FaceNormal() types.Vec3 {
	e1 := t.Vertices[1].Pos.Vec3().Sub(t.Vertices[0].Pos.Vec3())
	e2 := t.Vertices[2].Pos.Vec3().Sub(t.Vertices[0].Pos.Vec3())
	return e1.Cross(e2).Normalize()
}
