package scene

import (
	"fmt"

	"github.com/lumenrt/lumen/types"
)

// The camera type controls the scene camera. The camera looks down its local
// -Z axis; yaw rotates around world Y and pitch around the camera X axis.
type Camera struct {
	Position types.Vec3
	Yaw      float32
	Pitch    float32
}

func NewCamera(position types.Vec3) *Camera {
	return &Camera{Position: position}
}

// Get the camera-to-world matrix: translate(position) * rotY(yaw) * rotX(pitch).
func (c *Camera) Matrix() types.Mat4 {
	t := types.Translate3D(c.Position[0], c.Position[1], c.Position[2])
	return t.Mul4(types.RotateY3D(c.Yaw)).Mul4(types.RotateX3D(c.Pitch))
}

// Get the world-to-camera matrix.
func (c *Camera) ViewMatrix() types.Mat4 {
	return c.Matrix().InvRigid()
}

// Move the camera along a camera-space direction.
func (c *Camera) Move(dir types.Vec3, amount float32) {
	worldDir := c.Matrix().MulDir(dir.Normalize())
	c.Position = c.Position.Add(worldDir.Mul(amount))
}

func (c *Camera) String() string {
	return fmt.Sprintf("camera(pos: %v, yaw: %.3f, pitch: %.3f)", c.Position, c.Yaw, c.Pitch)
}
