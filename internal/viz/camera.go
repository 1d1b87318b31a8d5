package viz

import (
	"math"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// Camera is an orbiting perspective camera looking at a trajectory's centre.
type Camera struct {
	Center     dynamo.Vec3
	Extent     float64
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

// NewCamera frames the given positions.
func NewCamera(positions []dynamo.Vec3) *Camera {
	c := &Camera{Distance: 4, RotX: -0.35, RotY: 0.6, Zoom: 1, Extent: 1}
	if len(positions) == 0 {
		return c
	}
	lo, hi := positions[0], positions[0]
	for _, p := range positions {
		lo = dynamo.V(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = dynamo.V(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	c.Center = lo.Add(hi).Scale(0.5)
	if e := hi.Sub(lo).Norm() / 2; e > 0 {
		c.Extent = e
	}
	return c
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// rotate moves p into camera space, normalised so the trajectory fits a
// unit sphere.
func (c *Camera) rotate(p dynamo.Vec3) dynamo.Vec3 {
	p = p.Sub(c.Center).Scale(1 / c.Extent)
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p.Scale(c.Zoom)
}

// Project converts a world position to canvas dots. ok is false behind the
// camera.
func (c *Camera) Project(p dynamo.Vec3, w, h int) (int, int, bool) {
	r := c.rotate(p)
	depth := c.Distance - r.Z
	if depth <= 0.1 {
		return 0, 0, false
	}
	scale := c.Distance / depth * math.Min(float64(w), float64(h)) / 2.2
	x := int(math.Round(r.X*scale)) + w/2
	y := int(math.Round(-r.Y*scale)) + h/2
	return x, y, true
}

// Render3D draws the ground grid under the trajectory and the path up to
// index upto.
func Render3D(cv *Canvas, cam *Camera, positions []dynamo.Vec3, upto int) {
	w, h := cv.Dots()
	line := func(a, b dynamo.Vec3) {
		x0, y0, ok0 := cam.Project(a, w, h)
		x1, y1, ok1 := cam.Project(b, w, h)
		if ok0 && ok1 {
			cv.DrawLine(x0, y0, x1, y1)
		}
	}

	e := cam.Extent
	cx, cz := cam.Center.X, cam.Center.Z
	for i := -2; i <= 2; i++ {
		f := float64(i) / 2 * e
		line(dynamo.V(cx-e, 0, cz+f), dynamo.V(cx+e, 0, cz+f))
		line(dynamo.V(cx+f, 0, cz-e), dynamo.V(cx+f, 0, cz+e))
	}

	if upto >= len(positions) {
		upto = len(positions) - 1
	}
	for i := 1; i <= upto; i++ {
		line(positions[i-1], positions[i])
	}
	if upto >= 0 {
		if x, y, ok := cam.Project(positions[upto], w, h); ok {
			cv.DrawBall(x, y)
		}
	}
}
