package cmd

import (
	"github.com/lumenrt/lumen/scene"
	"github.com/lumenrt/lumen/types"
)

// Build the built-in demo scene: a ground plane, a few spheres using the
// different material features and two instances of the shared box geometry.
func demoScene() (*scene.Scene, *scene.Camera) {
	sc := scene.NewScene()

	ground := sc.AddMaterial("ground", scene.DiffuseMaterial(types.Vec3{0.6, 0.6, 0.55}))
	red := sc.AddMaterial("red", scene.DiffuseMaterial(types.Vec3{0.85, 0.2, 0.15}))
	light := sc.AddMaterial("light", scene.EmissiveMaterial(types.Vec3{1, 0.9, 0.7}, 4))

	chrome := scene.DefaultMaterial()
	chrome.Color = types.Vec4{0.9, 0.9, 0.9, 0}
	chrome.Metallic = 1
	chrome.Specular = 1
	chrome.Smoothness = 0.95
	metal := sc.AddMaterial("chrome", chrome)

	glassMat := scene.DefaultMaterial()
	glassMat.Transmittance = 1
	glassMat.RefractionIndex = 1.5
	glassMat.Specular = 0.1
	glassMat.Smoothness = 1
	glass := sc.AddMaterial("glass", glassMat)

	boxMat := scene.DiffuseMaterial(types.Vec3{0.2, 0.4, 0.8})
	boxMat.Specular = 0.2
	boxMat.Smoothness = 0.6
	blue := sc.AddMaterial("blue", boxMat)

	sc.AddShape(scene.NewPlaneShape(ground, types.Vec3{0, 0, 0}, types.Vec3{0, 1, 0}))
	sc.AddShape(scene.NewSphereShape(red, types.Vec3{-1.6, 0.7, -1}, 0.7))
	sc.AddShape(scene.NewSphereShape(metal, types.Vec3{0, 1, -1.5}, 1))
	sc.AddShape(scene.NewSphereShape(glass, types.Vec3{1.4, 0.5, -0.4}, 0.5))
	sc.AddShape(scene.NewSphereShape(light, types.Vec3{0.3, 2.6, -0.2}, 0.25))

	sc.InitBoxGeometry()
	sc.AddShape(scene.NewModelShape(blue, sc.BoxModel(types.Vec3{2.4, 0.6, -2}, types.Vec3{1.2, 1.2, 1.2})))
	sc.AddShape(scene.NewModelShape(blue, sc.BoxModel(types.Vec3{-0.6, 0.15, 0.4}, types.Vec3{0.6, 0.3, 0.3})))

	cam := scene.NewCamera(types.Vec3{0, 1.4, 4.5})
	cam.Pitch = -0.12
	return sc, cam
}
