package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// ParseColor accepts "#rrggbb".
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color: %s", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color: %s", hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

type setter interface {
	Set(x, y int, c color.Color)
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img setter, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawDot(img setter, cx, cy, r int, c color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.Set(cx+x, cy+y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func toPixel(f frame, p Point) (int, int) {
	x, y := f.pixel(p)
	return int(math.Round(x)), int(math.Round(y))
}

func fill(img setter, w, h int, c color.Color) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
}

func drawGround(img setter, f frame, c color.Color) {
	if _, gy := toPixel(f, Point{0, 0}); gy >= 0 && gy < f.height {
		for x := 0; x < f.width; x += 2 {
			img.Set(x, gy, c)
		}
	}
}

func drawPath(img setter, f frame, points []Point, c color.Color) {
	for i := 1; i < len(points); i++ {
		x0, y0 := toPixel(f, points[i-1])
		x1, y1 := toPixel(f, points[i])
		drawLine(img, x0, y0, x1, y1, c)
	}
}

// WritePNG renders the projected trajectory as a PNG image.
func WritePNG(w io.Writer, points []Point, width, height int, strokeColor string) error {
	if len(points) < 2 {
		return fmt.Errorf("png: need at least 2 points, got %d", len(points))
	}
	stroke, err := ParseColor(strokeColor)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	f := newFrame(points, width, height)
	fill(img, width, height, mustColor(background))
	drawGround(img, f, mustColor(groundColor))
	drawPath(img, f, points, stroke)
	return png.Encode(w, img)
}

type GIFOptions struct {
	Width, Height int
	View          View
	// Every draws one frame per Every samples.
	Every int
	// Delay between frames in 100ths of a second.
	Delay       int
	StrokeColor string
}

// WriteGIF animates the projectile along its path, one frame per Every
// samples, leaving the traced path behind it.
func WriteGIF(w io.Writer, traj *dynamo.Trajectory, opts GIFOptions) error {
	if traj.Len() < 2 {
		return fmt.Errorf("gif: need at least 2 samples, got %d", traj.Len())
	}
	stroke, err := ParseColor(opts.StrokeColor)
	if err != nil {
		return err
	}
	if opts.Delay <= 0 {
		opts.Delay = 2
	}

	points := Project(traj, opts.View)
	f := newFrame(points, opts.Width, opts.Height)
	palette := color.Palette{mustColor(background), mustColor(groundColor), stroke, color.White}
	rect := image.Rect(0, 0, opts.Width, opts.Height)

	anim := &gif.GIF{}
	for _, idx := range Every(len(points), opts.Every) {
		img := image.NewPaletted(rect, palette)
		drawGround(img, f, palette[1])
		drawPath(img, f, points[:idx+1], palette[2])
		x, y := toPixel(f, points[idx])
		drawDot(img, x, y, 3, palette[3])

		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	return gif.EncodeAll(w, anim)
}
