package scene

import "github.com/lumenrt/lumen/types"

// Size of a packed material record in bytes.
const SizeofMaterial = 64

// Defines a surface material. The field order and padding match the material
// struct of the tracer kernel; the record is copied verbatim to the device.
type Material struct {
	Smoothness float32

	// Metallic reflections are tinted by the base color while specular
	// reflections are not.
	Metallic float32
	Specular float32

	EmissionStrength float32

	// Transmittance > 0 makes the surface refractive.
	Transmittance   float32
	RefractionIndex float32

	_ [2]float32

	// Base color.
	Color types.Vec4

	// Emission color. Scaled by EmissionStrength.
	Emission types.Vec4
}

// Create a white diffuse material.
func DefaultMaterial() Material {
	return Material{
		RefractionIndex: 1.0,
		Color:           types.Vec4{1, 1, 1, 0},
	}
}

// Create a diffuse material with the given color.
func DiffuseMaterial(color types.Vec3) Material {
	m := DefaultMaterial()
	m.Color = color.Vec4(0)
	return m
}

// Create an emissive material.
func EmissiveMaterial(color types.Vec3, strength float32) Material {
	m := DefaultMaterial()
	m.Color = types.Vec4{}
	m.Emission = color.Vec4(0)
	m.EmissionStrength = strength
	return m
}

// Returns true if the material refracts light.
func (m *Material) IsTransparent() bool {
	return m.Transmittance > 0
}
