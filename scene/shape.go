package scene

import (
	"fmt"
	"unsafe"

	"github.com/lumenrt/lumen/types"
)

// Size of a packed shape record in bytes.
const SizeofShape = 128

type ShapeKind uint32

// The supported shape variants. Values match the kernel's shape type enum.
const (
	SphereShape ShapeKind = iota
	PlaneShape
	ModelShape
)

// Implements Stringer.
func (k ShapeKind) String() string {
	switch k {
	case SphereShape:
		return "sphere"
	case PlaneShape:
		return "plane"
	case ModelShape:
		return "model"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint32(k))
}

type Sphere struct {
	Position types.Vec4
	Radius   float32
	_        [3]float32
}

type Plane struct {
	Position types.Vec4
	Normal   types.Vec4
}

// A triangle mesh instance. It references the contiguous range
// [TriangleIndex, TriangleIndex+NumTriangles) of the shared triangle pool and
// places it in the world using Transform.
//
// The bounding box is NOT kept in sync with Transform. Callers must invoke
// ComputeBoundingBox after every transform edit; the kernel culls rays using
// the stored box and a stale box makes the model partially or fully invisible.
type Model struct {
	TriangleIndex uint32
	NumTriangles  uint32
	_             [2]uint32

	BoundingMin types.Vec4
	BoundingMax types.Vec4

	Transform types.Mat4
}

// Size of the union payload; the largest variant (Model) is 112 bytes.
const shapePayloadWords = 28

// A scene shape. Shape is a flat, fixed-layout tagged union: Kind selects how
// the payload is interpreted and the whole record is copied to the device as
// is. Use the Sphere, Plane and Model accessors to read or edit the payload.
type Shape struct {
	Kind ShapeKind

	// Index into the scene material table.
	Material int32

	_ [2]uint32

	payload [shapePayloadWords]uint32
}

// Create a sphere shape.
func NewSphereShape(material int32, position types.Vec3, radius float32) Shape {
	s := Shape{Kind: SphereShape, Material: material}
	sp := s.Sphere()
	sp.Position = position.Vec4(0)
	sp.Radius = radius
	return s
}

// Create a plane shape. The normal is normalized.
func NewPlaneShape(material int32, position, normal types.Vec3) Shape {
	s := Shape{Kind: PlaneShape, Material: material}
	p := s.Plane()
	p.Position = position.Vec4(0)
	p.Normal = normal.Normalize().Vec4(0)
	return s
}

// Create a model shape.
func NewModelShape(material int32, model Model) Shape {
	s := Shape{Kind: ModelShape, Material: material}
	*s.Model() = model
	return s
}

// Access the sphere payload. Panics if the shape is not a sphere.
func (s *Shape) Sphere() *Sphere {
	s.mustBe(SphereShape)
	return (*Sphere)(unsafe.Pointer(&s.payload[0]))
}

// Access the plane payload. Panics if the shape is not a plane.
func (s *Shape) Plane() *Plane {
	s.mustBe(PlaneShape)
	return (*Plane)(unsafe.Pointer(&s.payload[0]))
}

// Access the model payload. Panics if the shape is not a model.
func (s *Shape) Model() *Model {
	s.mustBe(ModelShape)
	return (*Model)(unsafe.Pointer(&s.payload[0]))
}

func (s *Shape) mustBe(kind ShapeKind) {
	if s.Kind != kind {
		panic(fmt.Sprintf("scene: shape is a %s; not a %s", s.Kind, kind))
	}
}

// Get the world-space position of the shape. For models this is the
// translation component of the model transform.
func (s *Shape) Position() types.Vec3 {
	switch s.Kind {
	case SphereShape:
		return s.Sphere().Position.Vec3()
	case PlaneShape:
		return s.Plane().Position.Vec3()
	case ModelShape:
		return s.Model().Transform.Translation()
	}
	panic(fmt.Sprintf("scene: unsupported shape kind %s", s.Kind))
}

func (s Shape) String() string {
	switch s.Kind {
	case SphereShape:
		sp := s.Sphere()
		return fmt.Sprintf("sphere(pos: %v, radius: %.3f, material: %d)", sp.Position.Vec3(), sp.Radius, s.Material)
	case PlaneShape:
		p := s.Plane()
		return fmt.Sprintf("plane(pos: %v, normal: %v, material: %d)", p.Position.Vec3(), p.Normal.Vec3(), s.Material)
	case ModelShape:
		m := s.Model()
		return fmt.Sprintf("model(triangles: [%d, %d), material: %d)", m.TriangleIndex, m.TriangleIndex+m.NumTriangles, s.Material)
	}
	return s.Kind.String()
}
