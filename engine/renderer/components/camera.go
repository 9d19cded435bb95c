package components

import (
	"github.com/spaghettifunk/navview/engine/math"
)

const (
	/** @brief The fixed vertical field of view, in degrees. */
	CameraFovDegrees float32 = 45.0
	CameraNearPlane  float32 = 0.1
	CameraFarPlane   float32 = 100000.0

	/** @brief Radians of yaw per pixel of horizontal mouse drag. */
	YawSensitivity float32 = 0.005
	/** @brief Radians of pitch per pixel of vertical mouse drag. */
	PitchSensitivity float32 = 0.005

	defaultViewportWidth  float32 = 800
	defaultViewportHeight float32 = 600
)

/**
 * @brief A free flying camera in a Z-up world. It keeps an orthonormal
 * forward/up/right basis and rebuilds its view matrix as soon as any of
 * its state changes, so the matrices are always current when read.
 */
type Camera struct {
	position math.Vec3
	forward  math.Vec3
	up       math.Vec3
	right    math.Vec3

	viewMatrix       math.Mat4
	projectionMatrix math.Mat4

	mousePanning bool
	mousePanX    float32
	mousePanY    float32

	viewportX      float32
	viewportY      float32
	viewportWidth  float32
	viewportHeight float32
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

/**
 * @brief Puts the camera back at the origin looking down -Z with an
 * 800x600 viewport.
 */
func (c *Camera) Reset() {
	c.position = math.NewVec3Zero()
	c.forward = math.NewVec3Forward()
	c.up = math.NewVec3Up()
	c.right = math.NewVec3Right()
	c.mousePanning = false
	c.mousePanX = 0
	c.mousePanY = 0
	c.viewportX = 0
	c.viewportY = 0
	c.updateViewMatrix()
	c.UpdateProjection(defaultViewportWidth, defaultViewportHeight)
}

func (c *Camera) updateViewMatrix() {
	c.viewMatrix = math.NewMat4LookAt(c.position, c.position.Add(c.forward), c.up)
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.position
}

func (c *Camera) GetForward() math.Vec3 {
	return c.forward
}

func (c *Camera) GetUp() math.Vec3 {
	return c.up
}

func (c *Camera) GetRight() math.Vec3 {
	return c.right
}

func (c *Camera) GetViewMatrix() math.Mat4 {
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() math.Mat4 {
	return c.projectionMatrix
}

// GetViewport returns the viewport origin and size in pixels.
func (c *Camera) GetViewport() (x, y, width, height float32) {
	return c.viewportX, c.viewportY, c.viewportWidth, c.viewportHeight
}

// Move places the camera at position.
func (c *Camera) Move(position math.Vec3) {
	c.position = position
	c.updateViewMatrix()
}

/**
 * @brief Turns the camera towards target, keeping the world Z axis as up.
 * NOTE: a target straight above or below the camera leaves right undefined.
 */
func (c *Camera) LookAt(target math.Vec3) {
	c.forward = target.Sub(c.position).Normalize()
	c.right = c.forward.Cross(math.NewVec3WorldUp()).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
	c.updateViewMatrix()
}

// MoveUp moves along the world Z axis.
func (c *Camera) MoveUp(delta float32) {
	c.position.Z += delta
	c.updateViewMatrix()
}

// MoveIn moves along the forward vector.
func (c *Camera) MoveIn(delta float32) {
	c.position = c.position.Add(c.forward.MulScalar(delta))
	c.updateViewMatrix()
}

// MoveRight moves along the right vector.
func (c *Camera) MoveRight(delta float32) {
	c.position = c.position.Add(c.right.MulScalar(delta))
	c.updateViewMatrix()
}

// MoveVertical moves along the camera's own up vector.
func (c *Camera) MoveVertical(delta float32) {
	c.position = c.position.Add(c.up.MulScalar(delta))
	c.updateViewMatrix()
}

// Yaw rotates the whole basis about the world Z axis by delta radians.
func (c *Camera) Yaw(delta float32) {
	zAxis := math.NewVec3WorldUp()
	c.forward = c.forward.Rotate(delta, zAxis)
	c.right = c.right.Rotate(delta, zAxis)
	c.up = c.up.Rotate(delta, zAxis)
	c.updateViewMatrix()
}

// Pitch rotates forward and up about the current right vector by delta radians.
func (c *Camera) Pitch(delta float32) {
	c.forward = c.forward.Rotate(delta, c.right)
	c.up = c.up.Rotate(delta, c.right)
	c.updateViewMatrix()
}

func (c *Camera) IsMousePanning() bool {
	return c.mousePanning
}

// BeginMousePan starts a drag at the given screen position.
func (c *Camera) BeginMousePan(screenX, screenY float32) {
	c.mousePanning = true
	c.mousePanX = screenX
	c.mousePanY = screenY
}

func (c *Camera) EndMousePan() {
	c.mousePanning = false
}

/**
 * @brief Rotates by the distance the cursor travelled since the previous
 * call (not since BeginMousePan), then remembers the new position.
 */
func (c *Camera) UpdateMousePan(newX, newY float32) {
	if !c.mousePanning {
		return
	}

	deltaX := newX - c.mousePanX
	deltaY := newY - c.mousePanY

	c.Yaw(-deltaX * YawSensitivity)
	c.Pitch(-deltaY * PitchSensitivity)

	c.mousePanX = newX
	c.mousePanY = newY
}

// GetMousePanAnchor returns the last screen position seen by the pan.
func (c *Camera) GetMousePanAnchor() (float32, float32) {
	return c.mousePanX, c.mousePanY
}

/**
 * @brief Rebuilds the projection for a new output size. Must be called
 * whenever the render surface is resized.
 */
func (c *Camera) UpdateProjection(width, height float32) {
	c.viewportWidth = width
	c.viewportHeight = height

	aspect := width / height
	c.projectionMatrix = math.NewMat4Perspective(math.DegToRad(CameraFovDegrees), aspect, CameraNearPlane, CameraFarPlane)
}

/**
 * @brief Maps a world position to screen pixels. X grows right, Y grows
 * down and Z is the depth in [0, 1].
 *
 * @return The screen position, or the zero vector when the point projects
 * with w == 0.
 */
func (c *Camera) ProjectPoint(worldPos math.Vec3) math.Vec3 {
	clip := c.projectionMatrix.Mul(c.viewMatrix).MulVec4(worldPos.ToVec4(1.0))
	if clip.W == 0 {
		return math.NewVec3Zero()
	}

	ndc := clip.ToVec3().MulScalar(1.0 / clip.W)
	return math.Vec3{
		X: (ndc.X+1.0)*0.5*c.viewportWidth + c.viewportX,
		Y: (1.0-ndc.Y)*0.5*c.viewportHeight + c.viewportY,
		Z: (ndc.Z + 1.0) * 0.5,
	}
}

/**
 * @brief The inverse of ProjectPoint. depth is in [0, 1], 0 being the near
 * plane.
 */
func (c *Camera) UnprojectPoint(screenX, screenY, depth float32) math.Vec3 {
	ndc := math.Vec4{
		X: (screenX-c.viewportX)/c.viewportWidth*2.0 - 1.0,
		Y: 1.0 - (screenY-c.viewportY)/c.viewportHeight*2.0,
		Z: depth*2.0 - 1.0,
		W: 1.0,
	}

	viewPos := c.projectionMatrix.Inverse().MulVec4(ndc)
	worldPos := c.viewMatrix.Inverse().MulVec4(viewPos)

	return worldPos.ToVec3().MulScalar(1.0 / worldPos.W)
}

// GetPickRay returns the ray from the eye through the near plane point
// under the given screen position.
func (c *Camera) GetPickRay(screenX, screenY float32) math.Ray {
	nearPoint := c.UnprojectPoint(screenX, screenY, 0.0)
	return math.Ray{
		Origin:    c.position,
		Direction: nearPoint.Sub(c.position).Normalize(),
	}
}
