package viz

import (
	"math"
	"strings"

	"github.com/san-kum/spinflight/internal/export"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid of Width×Height cells, 2×4 dots each.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots is the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawBall draws a small filled disc, the projectile marker.
func (c *Canvas) DrawBall(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps plane coordinates onto canvas dots, keeping aspect ratio
// when Equal is set.
type Viewport struct {
	minX, minY float64
	scaleX     float64
	scaleY     float64
	dotsH      int
}

func NewViewport(points []export.Point, c *Canvas, equal bool) Viewport {
	w, h := c.Dots()
	if len(points) == 0 {
		return Viewport{scaleX: 1, scaleY: 1, dotsH: h}
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	sx := float64(w-1) / rangeX
	sy := float64(h-1) / rangeY
	if equal {
		s := math.Min(sx, sy)
		sx, sy = s, s
	}
	return Viewport{minX: minX, minY: minY, scaleX: sx, scaleY: sy, dotsH: h}
}

func (v Viewport) Map(p export.Point) (int, int) {
	x := (p.X - v.minX) * v.scaleX
	y := float64(v.dotsH-1) - (p.Y-v.minY)*v.scaleY
	return int(math.Round(x)), int(math.Round(y))
}

// DrawPath draws points as a connected polyline.
func (c *Canvas) DrawPath(points []export.Point, v Viewport) {
	for i := 1; i < len(points); i++ {
		x0, y0 := v.Map(points[i-1])
		x1, y1 := v.Map(points[i])
		c.DrawLine(x0, y0, x1, y1)
	}
	if len(points) == 1 {
		c.Set(v.Map(points[0]))
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
