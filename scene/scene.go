package scene

import (
	"fmt"
	"io"

	"github.com/lumenrt/lumen/types"
)

// Loads triangle meshes into the shared triangle pool. Mesh file formats are
// handled outside this package.
type MeshLoader interface {
	// Parse a mesh from r, append its triangles to pool and return the
	// range that was appended.
	Load(r io.Reader, pool *[]Triangle) (index, count uint32, err error)
}

// The scene container holds all host-side collections that get uploaded to
// the device. Shapes reference materials by index and models reference
// contiguous ranges of the triangle pool.
type Scene struct {
	Shapes    []Shape
	Triangles []Triangle
	Materials []Material

	// Material names, parallel to Materials.
	MaterialNames []string

	box      BoxGeometry
	revision uint64
}

// Create a scene whose material table contains the default material.
func NewScene() *Scene {
	s := &Scene{}
	s.AddMaterial("default", DefaultMaterial())
	return s
}

// Get the scene revision. The revision is bumped by every mutating helper and
// by Touch.
func (s *Scene) Revision() uint64 {
	return s.revision
}

// Flag the scene as modified. Call this after editing the exported slices directly.
func (s *Scene) Touch() {
	s.revision++
}

// Append a material and return its index.
func (s *Scene) AddMaterial(name string, m Material) int32 {
	s.Materials = append(s.Materials, m)
	s.MaterialNames = append(s.MaterialNames, name)
	s.Touch()
	return int32(len(s.Materials) - 1)
}

// Lookup a material index by name. Returns -1 if no material matches.
func (s *Scene) MaterialIndex(name string) int32 {
	for i, n := range s.MaterialNames {
		if n == name {
			return int32(i)
		}
	}
	return -1
}

// Remove a material. Shapes that referenced the removed material fall back
// to material 0; references to later materials are shifted down by one.
func (s *Scene) RemoveMaterial(index int32) error {
	if index < 0 || int(index) >= len(s.Materials) {
		return fmt.Errorf("%w: %d", ErrMaterialIndexOutOfRange, index)
	}
	if len(s.Materials) == 1 {
		return ErrLastMaterial
	}

	s.Materials = append(s.Materials[:index], s.Materials[index+1:]...)
	if int(index) < len(s.MaterialNames) {
		s.MaterialNames = append(s.MaterialNames[:index], s.MaterialNames[index+1:]...)
	}

	for i := range s.Shapes {
		switch mat := s.Shapes[i].Material; {
		case mat == index:
			s.Shapes[i].Material = 0
		case mat > index:
			s.Shapes[i].Material = mat - 1
		}
	}
	s.Touch()
	return nil
}

// Append a shape and return its index.
func (s *Scene) AddShape(shape Shape) int {
	s.Shapes = append(s.Shapes, shape)
	s.Touch()
	return len(s.Shapes) - 1
}

// Append triangles to the shared pool and return the appended range.
func (s *Scene) AddTriangles(tris []Triangle) (index, count uint32) {
	index = uint32(len(s.Triangles))
	s.Triangles = append(s.Triangles, tris...)
	s.Touch()
	return index, uint32(len(tris))
}

// Load a mesh through loader and wrap it in a model shape.
func (s *Scene) AddMesh(loader MeshLoader, r io.Reader, material int32) (int, error) {
	index, count, err := loader.Load(r, &s.Triangles)
	if err != nil {
		return -1, fmt.Errorf("scene: could not load mesh: %w", err)
	}
	m, err := NewModel(s.Triangles, index, count)
	if err != nil {
		return -1, err
	}
	return s.AddShape(NewModelShape(material, m)), nil
}

// Seed the shared box triangles. Subsequent calls are no-ops.
func (s *Scene) InitBoxGeometry() BoxGeometry {
	if !s.box.Valid() {
		s.box = CreateBoxTriangles(&s.Triangles)
		s.Touch()
	}
	return s.box
}

// Build a box model that references the shared box triangles. Panics if
// InitBoxGeometry has not been called.
func (s *Scene) BoxModel(position, size types.Vec3) Model {
	return s.box.Model(position, size)
}

// Check the scene invariants that the device kernels rely on.
func (s *Scene) Validate() error {
	if len(s.Materials) == 0 {
		return ErrNoMaterials
	}

	for i, mat := range s.Materials {
		if mat.Transmittance > 0 && mat.RefractionIndex <= 0 {
			return fmt.Errorf("%w: material %d", ErrInvalidRefractionIndex, i)
		}
	}

	for i := range s.Shapes {
		shape := &s.Shapes[i]
		if shape.Material < 0 || int(shape.Material) >= len(s.Materials) {
			return fmt.Errorf("%w: shape %d references material %d", ErrMaterialIndexOutOfRange, i, shape.Material)
		}

		switch shape.Kind {
		case SphereShape, PlaneShape:
		case ModelShape:
			m := shape.Model()
			if err := m.checkRange(s.Triangles); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
			if !m.BoundsCover(s.Triangles) {
				return fmt.Errorf("%w: shape %d", ErrStaleBoundingBox, i)
			}
		default:
			return fmt.Errorf("scene: shape %d has unsupported kind %s", i, shape.Kind)
		}
	}
	return nil
}
