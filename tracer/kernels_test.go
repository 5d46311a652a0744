package tracer

import (
	"github.com/chewxy/math32"

	"github.com/lumenrt/lumen/compute/computetest"
	"github.com/lumenrt/lumen/scene"
	"github.com/lumenrt/lumen/types"
)

// Go versions of the tracer kernels used with the in-memory device. The
// render kernel shades the closest sphere or plane with a single sun term and
// adds uniform noise of the given amplitude, seeded by pixel, tick and time.
func newTestDevice(noise float32) *computetest.Device {
	dev := computetest.NewDevice("test-device")
	dev.RegisterKernel(renderKernel.String(), 6, func(inv *computetest.Invocation) error {
		return testRender(inv, noise)
	})
	dev.RegisterKernel(averageKernel.String(), 3, testAverage)
	return dev
}

func hash32(v uint32) uint32 {
	v ^= v >> 16
	v *= 0x7feb352d
	v ^= v >> 15
	v *= 0x846ca68b
	v ^= v >> 16
	return v
}

func unitNoise(seed uint32) float32 {
	return float32(hash32(seed)&0xffffff) / float32(0x1000000)
}

func testSky(sd *SceneData, dir types.Vec3) types.Vec3 {
	t := math32.Max(0, dir[1])
	return sd.HorizonColor.Vec3().Mul(1 - t).Add(sd.ZenithColor.Vec3().Mul(t))
}

func testRender(inv *computetest.Invocation, noise float32) error {
	rd := computetest.ArgAs[RenderData](inv, renderArgRenderData)
	sd := computetest.ArgAs[SceneData](inv, renderArgSceneData)
	canvas := computetest.View[types.Vec4](inv.Buffer(renderArgCanvas))
	shapes := computetest.View[scene.Shape](inv.Buffer(renderArgShapes))
	materials := computetest.View[scene.Material](inv.Buffer(renderArgMaterials))

	id := inv.GlobalID
	x, y := id%int(rd.Width), id/int(rd.Width)

	px := (2*(float32(x)+0.5)/float32(rd.Width) - 1) * rd.AspectRatio * rd.FOVScale
	py := (1 - 2*(float32(y)+0.5)/float32(rd.Height)) * rd.FOVScale
	origin := rd.CameraToWorld.Translation()
	dir := rd.CameraToWorld.MulDir(types.Vec3{px, py, -1}).Normalize()

	color := testSky(&sd, dir)
	closest := math32.Inf(1)
	for i := 0; i < int(sd.NumShapes) && i < len(shapes); i++ {
		s := &shapes[i]

		var dist float32
		var normal types.Vec3
		switch s.Kind {
		case scene.SphereShape:
			sp := s.Sphere()
			oc := origin.Sub(sp.Position.Vec3())
			b := oc.Dot(dir)
			disc := b*b - (oc.Dot(oc) - sp.Radius*sp.Radius)
			if disc < 0 {
				continue
			}
			dist = -b - math32.Sqrt(disc)
			normal = origin.Add(dir.Mul(dist)).Sub(sp.Position.Vec3()).Normalize()
		case scene.PlaneShape:
			pl := s.Plane()
			denom := pl.Normal.Vec3().Dot(dir)
			if math32.Abs(denom) < 1e-6 {
				continue
			}
			dist = pl.Position.Vec3().Sub(origin).Dot(pl.Normal.Vec3()) / denom
			normal = pl.Normal.Vec3()
		default:
			continue
		}

		if dist <= 0 || dist >= closest {
			continue
		}
		closest = dist

		mat := materials[s.Material]
		lambert := math32.Max(0, normal.Dot(sd.SunDirection.Vec3()))
		color = mat.Color.Vec3().Mul(0.2 + 0.8*lambert).Add(mat.Emission.Vec3().Mul(mat.EmissionStrength))
	}

	if noise > 0 {
		seed := uint32(id)*9781 + rd.Tick*6271 + rd.Time*26699
		for ch := 0; ch < 3; ch++ {
			color[ch] += (unitNoise(seed+uint32(ch)*0x9e3779b9) - 0.5) * 2 * noise
		}
	}

	canvas[id] = canvas[id].Add(color.Vec4(1))
	return nil
}

func toByte(v float32) uint8 {
	return uint8(math32.Min(math32.Max(v, 0), 1) * 255)
}

func testAverage(inv *computetest.Invocation) error {
	canvas := computetest.View[types.Vec4](inv.Buffer(averageArgCanvas))
	out := inv.Buffer(averageArgOutput).Bytes()
	ticks := inv.Uint32(averageArgTicks)

	id := inv.GlobalID
	c := canvas[id].Mul(1 / float32(ticks))
	out[id*4+0] = 255
	out[id*4+1] = toByte(c[0])
	out[id*4+2] = toByte(c[1])
	out[id*4+3] = toByte(c[2])
	return nil
}
