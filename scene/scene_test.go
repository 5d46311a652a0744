package scene

import (
	"errors"
	"io"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenrt/lumen/types"
)

func TestRecordLayout(t *testing.T) {
	assert.EqualValues(t, SizeofMaterial, unsafe.Sizeof(Material{}))
	assert.EqualValues(t, SizeofShape, unsafe.Sizeof(Shape{}))
	assert.EqualValues(t, SizeofTriangle, unsafe.Sizeof(Triangle{}))
	assert.EqualValues(t, 112, unsafe.Sizeof(Model{}))
	assert.EqualValues(t, 32, unsafe.Sizeof(Sphere{}))
	assert.EqualValues(t, 32, unsafe.Sizeof(Plane{}))

	var s Shape
	assert.EqualValues(t, 16, unsafe.Offsetof(s.payload))
	assert.LessOrEqual(t, unsafe.Sizeof(Model{}), unsafe.Sizeof(s.payload))
}

func TestShapeAccessors(t *testing.T) {
	s := NewSphereShape(2, types.Vec3{1, 2, 3}, 0.5)
	assert.Equal(t, SphereShape, s.Kind)
	assert.EqualValues(t, 2, s.Material)
	assert.Equal(t, float32(0.5), s.Sphere().Radius)
	assert.Equal(t, types.Vec3{1, 2, 3}, s.Position())

	assert.Panics(t, func() { s.Plane() })
	assert.Panics(t, func() { s.Model() })

	p := NewPlaneShape(0, types.Vec3{}, types.Vec3{0, 10, 0})
	assert.Equal(t, types.Vec4{0, 1, 0, 0}, p.Plane().Normal)
	assert.Panics(t, func() { p.Sphere() })

	// Edits through the accessor are visible in the record.
	s.Sphere().Radius = 4
	assert.Equal(t, float32(4), s.Sphere().Radius)
}

func TestModelBoundingBox(t *testing.T) {
	var pool []Triangle
	box := CreateBoxTriangles(&pool)
	require.Len(t, pool, BoxTriangleCount)

	m, err := NewModel(pool, box.TriangleIndex(), BoxTriangleCount)
	require.NoError(t, err)
	assert.Equal(t, types.Vec4{-.5, -.5, -.5, 0}, m.BoundingMin)
	assert.Equal(t, types.Vec4{.5, .5, .5, 0}, m.BoundingMax)
	assert.True(t, m.BoundsCover(pool))

	m.SetTransform(types.Vec3{10, 0, 0}, types.QuatIdent(), types.Vec3{2, 2, 2})
	assert.False(t, m.BoundsCover(pool), "expected stale box after transform edit")

	require.NoError(t, m.ComputeBoundingBox(pool))
	assert.True(t, m.BoundsCover(pool))
	assert.True(t, types.ApproxEqual(types.Vec3{9, -1, -1}, m.BoundingMin.Vec3(), 1e-5))
	assert.True(t, types.ApproxEqual(types.Vec3{11, 1, 1}, m.BoundingMax.Vec3(), 1e-5))

	// Every transformed vertex lies inside the box.
	for _, tri := range pool {
		for _, v := range tri.Vertices {
			p := m.Transform.MulPoint(v.Pos.Vec3())
			for axis := 0; axis < 3; axis++ {
				assert.GreaterOrEqual(t, p[axis], m.BoundingMin[axis]-1e-5)
				assert.LessOrEqual(t, p[axis], m.BoundingMax[axis]+1e-5)
			}
		}
	}
}

func TestModelRangeOutOfBounds(t *testing.T) {
	pool := make([]Triangle, 4)
	_, err := NewModel(pool, 2, 3)
	assert.True(t, errors.Is(err, ErrTriangleRangeOutOfBounds))

	m := Model{TriangleIndex: 3, NumTriangles: 2, Transform: types.Ident4()}
	assert.False(t, m.BoundsCover(pool))
}

func TestEmptyModelCollapsesToOrigin(t *testing.T) {
	m := Model{Transform: types.Translate3D(1, 2, 3)}
	require.NoError(t, m.ComputeBoundingBox(nil))
	assert.Equal(t, types.Vec4{1, 2, 3, 0}, m.BoundingMin)
	assert.Equal(t, m.BoundingMin, m.BoundingMax)
}

func TestBoxInstancing(t *testing.T) {
	sc := NewScene()
	assert.Panics(t, func() { sc.BoxModel(types.Vec3{}, types.Vec3{1, 1, 1}) })

	box := sc.InitBoxGeometry()
	require.True(t, box.Valid())
	assert.Equal(t, box, sc.InitBoxGeometry(), "second init must reuse the seeded triangles")
	assert.Len(t, sc.Triangles, BoxTriangleCount)

	a := sc.BoxModel(types.Vec3{-2, 0, 0}, types.Vec3{1, 1, 1})
	b := sc.BoxModel(types.Vec3{3, 1, 0}, types.Vec3{2, 4, 2})
	assert.Equal(t, a.TriangleIndex, b.TriangleIndex)
	assert.Equal(t, a.NumTriangles, b.NumTriangles)
	assert.NotEqual(t, a.Transform, b.Transform)
	assert.True(t, a.BoundsCover(sc.Triangles))
	assert.True(t, b.BoundsCover(sc.Triangles))
	assert.Equal(t, types.Vec4{2, -1, -1, 0}, b.BoundingMin)
	assert.Equal(t, types.Vec4{4, 3, 1, 0}, b.BoundingMax)

	var zero BoxGeometry
	assert.PanicsWithValue(t, ErrBoxGeometryNotInitialized, func() { zero.Model(types.Vec3{}, types.Vec3{1, 1, 1}) })
}

func TestBoxFaceWinding(t *testing.T) {
	var pool []Triangle
	CreateBoxTriangles(&pool)
	for i := range pool {
		n := pool[i].Vertices[0].Normal.Vec3()
		assert.True(t, types.ApproxEqual(n, pool[i].FaceNormal(), 1e-5), "triangle %d winding disagrees with its normal", i)
	}
}

func TestSceneValidate(t *testing.T) {
	sc := NewScene()
	box := sc.InitBoxGeometry()
	glass := sc.AddMaterial("glass", Material{Transmittance: 1, RefractionIndex: 1.5})
	sc.AddShape(NewSphereShape(glass, types.Vec3{0, 1, 0}, 1))
	sc.AddShape(NewModelShape(0, box.Model(types.Vec3{}, types.Vec3{1, 1, 1})))
	require.NoError(t, sc.Validate())

	specs := []struct {
		descr  string
		mutate func(*Scene)
		expErr error
	}{
		{
			"unknown material",
			func(s *Scene) { s.Shapes[0].Material = 7 },
			ErrMaterialIndexOutOfRange,
		},
		{
			"refraction index",
			func(s *Scene) { s.Materials[glass].RefractionIndex = 0 },
			ErrInvalidRefractionIndex,
		},
		{
			"stale box",
			func(s *Scene) { s.Shapes[1].Model().Transform = types.Translate3D(5, 0, 0) },
			ErrStaleBoundingBox,
		},
		{
			"triangle range",
			func(s *Scene) { s.Shapes[1].Model().NumTriangles = 100 },
			ErrTriangleRangeOutOfBounds,
		},
		{
			"no materials",
			func(s *Scene) { s.Materials = nil },
			ErrNoMaterials,
		},
	}

	for _, spec := range specs {
		clone := *sc
		clone.Shapes = append([]Shape(nil), sc.Shapes...)
		clone.Materials = append([]Material(nil), sc.Materials...)
		spec.mutate(&clone)
		assert.True(t, errors.Is(clone.Validate(), spec.expErr), spec.descr)
	}
}

func TestRemoveMaterial(t *testing.T) {
	sc := NewScene()
	red := sc.AddMaterial("red", DiffuseMaterial(types.Vec3{1, 0, 0}))
	blue := sc.AddMaterial("blue", DiffuseMaterial(types.Vec3{0, 0, 1}))
	sc.AddShape(NewSphereShape(red, types.Vec3{}, 1))
	sc.AddShape(NewSphereShape(blue, types.Vec3{}, 1))

	rev := sc.Revision()
	require.NoError(t, sc.RemoveMaterial(red))
	assert.Greater(t, sc.Revision(), rev)
	assert.EqualValues(t, 0, sc.Shapes[0].Material)
	assert.EqualValues(t, 1, sc.Shapes[1].Material)
	assert.EqualValues(t, 1, sc.MaterialIndex("blue"))
	assert.EqualValues(t, -1, sc.MaterialIndex("red"))
	require.NoError(t, sc.Validate())

	require.NoError(t, sc.RemoveMaterial(1))
	assert.Equal(t, ErrLastMaterial, sc.RemoveMaterial(0))
	assert.True(t, errors.Is(sc.RemoveMaterial(3), ErrMaterialIndexOutOfRange))
}

type quadLoader struct{}

func (quadLoader) Load(_ io.Reader, pool *[]Triangle) (uint32, uint32, error) {
	index := uint32(len(*pool))
	n := types.Vec3{0, 0, 1}
	*pool = append(*pool,
		NewFlatTriangle(n, types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}, types.Vec3{1, 1, 0}),
		NewFlatTriangle(n, types.Vec3{0, 0, 0}, types.Vec3{1, 1, 0}, types.Vec3{0, 1, 0}),
	)
	return index, 2, nil
}

func TestAddMesh(t *testing.T) {
	sc := NewScene()
	sc.InitBoxGeometry()
	idx, err := sc.AddMesh(quadLoader{}, nil, 0)
	require.NoError(t, err)

	m := sc.Shapes[idx].Model()
	assert.EqualValues(t, BoxTriangleCount, m.TriangleIndex)
	assert.EqualValues(t, 2, m.NumTriangles)
	assert.Equal(t, types.Vec4{1, 1, 0, 0}, m.BoundingMax)
	require.NoError(t, sc.Validate())
}

func TestAddTriangles(t *testing.T) {
	sc := NewScene()
	sc.InitBoxGeometry()
	rev := sc.Revision()

	n := types.Vec3{0, 1, 0}
	index, count := sc.AddTriangles([]Triangle{
		NewFlatTriangle(n, types.Vec3{0, 0, 0}, types.Vec3{0, 0, 2}, types.Vec3{2, 0, 0}),
	})
	assert.EqualValues(t, BoxTriangleCount, index)
	assert.EqualValues(t, 1, count)
	assert.Len(t, sc.Triangles, BoxTriangleCount+1)
	assert.NotEqual(t, rev, sc.Revision())

	m, err := NewModel(sc.Triangles, index, count)
	require.NoError(t, err)
	assert.Equal(t, types.Vec4{2, 0, 2, 0}, m.BoundingMax)

	sc.AddShape(NewModelShape(0, m))
	require.NoError(t, sc.Validate())

	index, count = sc.AddTriangles(nil)
	assert.EqualValues(t, BoxTriangleCount+1, index)
	assert.Zero(t, count)
}

func TestCameraMatrices(t *testing.T) {
	cam := NewCamera(types.Vec3{1, 2, 3})
	cam.Yaw = 0.7
	cam.Pitch = -0.3

	world := cam.Matrix()
	view := cam.ViewMatrix()
	p := types.Vec3{0.5, -1, 4}
	assert.True(t, types.ApproxEqual(p, view.MulPoint(world.MulPoint(p)), 1e-5))
	assert.True(t, types.ApproxEqual(cam.Position, world.MulPoint(types.Vec3{}), 1e-6))

	cam = NewCamera(types.Vec3{})
	cam.Move(types.Vec3{0, 0, -1}, 2)
	assert.True(t, types.ApproxEqual(types.Vec3{0, 0, -2}, cam.Position, 1e-6))
}
