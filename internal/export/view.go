package export

import (
	"fmt"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// View selects the plane a trajectory is projected onto.
type View int

const (
	Side  View = iota // x against height
	Top               // x against lateral z
	Front             // lateral z against height
)

func (v View) String() string {
	switch v {
	case Side:
		return "side"
	case Top:
		return "top"
	case Front:
		return "front"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

func ParseView(name string) (View, error) {
	switch name {
	case "side", "":
		return Side, nil
	case "top":
		return Top, nil
	case "front":
		return Front, nil
	}
	return Side, fmt.Errorf("unknown view: %s", name)
}

type Point struct{ X, Y float64 }

func (v View) Project(p dynamo.Vec3) Point {
	switch v {
	case Top:
		return Point{p.X, p.Z}
	case Front:
		return Point{p.Z, p.Y}
	default:
		return Point{p.X, p.Y}
	}
}

// Project maps every sample position onto the view plane.
func Project(traj *dynamo.Trajectory, v View) []Point {
	pts := make([]Point, 0, traj.Len())
	traj.Each(func(_ int, s dynamo.Sample) bool {
		pts = append(pts, v.Project(s.Position))
		return true
	})
	return pts
}

// frame maps plot coordinates to a width×height pixel box with 10% padding.
type frame struct {
	minX, minY     float64
	rangeX, rangeY float64
	width, height  int
}

func newFrame(points []Point, width, height int) frame {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	return frame{
		minX: minX, minY: minY,
		rangeX: maxX - minX, rangeY: maxY - minY,
		width: width, height: height,
	}
}

func (f frame) pixel(p Point) (float64, float64) {
	x := (p.X - f.minX) / f.rangeX * float64(f.width)
	y := float64(f.height) - (p.Y-f.minY)/f.rangeY*float64(f.height)
	return x, y
}
