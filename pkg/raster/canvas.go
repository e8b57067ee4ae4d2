// Package raster implements graphics.Canvas on an in-memory RGBA image.
//
// Shapes are filled with the golang.org/x/image/vector rasterizer, which
// gives anti-aliased edges. Text uses the fixed 7x13 bitmap face scaled to
// the requested size, so it stays legible down to very small canvases.
package raster

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/clockface/pkg/graphics"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Canvas draws into an *image.RGBA. It is not safe for concurrent use.
type Canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	m     matrix
	stack []matrix
}

// New returns a transparent canvas of width x height pixels. Negative
// dimensions are treated as zero.
func New(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
		m:   identity,
	}
}

// Image returns the backing image. It is drawn into in place.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() graphics.Size {
	b := c.img.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.m)
}

// Restore pops the last saved transform. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.m = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) {
	c.m = c.m.mul(matrix{a: 1, d: 1, e: dx, f: dy})
}

func (c *Canvas) Scale(sx, sy float64) {
	c.m = c.m.mul(matrix{a: sx, d: sy})
}

func (c *Canvas) Rotate(radians float64) {
	sin, cos := math.Sincos(radians)
	c.m = c.m.mul(matrix{a: cos, b: sin, c: -sin, d: cos})
}

// Clear replaces every pixel, ignoring the current transform.
func (c *Canvas) Clear(color graphics.Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, xdraw.Src)
}

// DrawCircle fills or strokes a circle. Under non-uniform scale the radius
// uses the geometric mean of the axis scales.
func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	if radius <= 0 || c.empty() {
		return
	}
	p := c.m.apply(center)
	r := radius * c.m.scale()

	c.begin()
	if paint.Style == graphics.PaintStyleStroke {
		half := paint.StrokeWidth * c.m.scale() / 2
		c.circle(p, r+half, false)
		if inner := r - half; inner > 0 {
			c.circle(p, inner, true)
		}
	} else {
		c.circle(p, r, false)
	}
	c.fill(paint.Color)
}

// DrawLine strokes a segment. Round caps add a half-width disc at each end.
func (c *Canvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	if c.empty() {
		return
	}
	a, b := c.m.apply(start), c.m.apply(end)
	half := math.Max(paint.StrokeWidth, 0) * c.m.scale() / 2
	if half == 0 {
		return
	}

	c.begin()
	dx, dy := b.X-a.X, b.Y-a.Y
	if length := math.Hypot(dx, dy); length > 0 {
		nx, ny := -dy/length*half, dx/length*half
		quad := []graphics.Offset{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		}
		if signedArea(quad) < 0 {
			quad[1], quad[3] = quad[3], quad[1]
		}
		c.polygon(quad)
	}
	if paint.StrokeCap == graphics.CapRound {
		c.circle(a, half, false)
		c.circle(b, half, false)
	}
	c.fill(paint.Color)
}

// DrawText draws one line of text with its top edge at position. Only the
// translation and scale of the current transform apply; text is never
// rotated.
func (c *Canvas) DrawText(text string, position graphics.Offset, style graphics.TextStyle) {
	if text == "" || style.FontSize <= 0 || c.empty() {
		return
	}
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 || lineHeight <= 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, width, lineHeight))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(style.Color.NRGBA()),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(text)

	k := style.FontSize * c.m.scale() / float64(lineHeight)
	w, h := float64(width)*k, float64(lineHeight)*k
	origin := c.m.apply(position)
	if style.Align == graphics.TextAlignCenter {
		origin.X -= w / 2
	}
	dst := image.Rect(
		int(math.Round(origin.X)),
		int(math.Round(origin.Y)),
		int(math.Round(origin.X+w)),
		int(math.Round(origin.Y+h)),
	)
	if dst.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.img, dst, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

func (c *Canvas) empty() bool {
	return c.img.Bounds().Empty()
}

func (c *Canvas) begin() {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *Canvas) fill(color graphics.Color) {
	c.z.DrawOp = xdraw.Over
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{})
}

// circle adds a closed circular subpath. Paths with opposite winding cancel,
// so a reversed inner circle punches a hole.
func (c *Canvas) circle(p graphics.Offset, r float64, reverse bool) {
	cx, cy := float32(p.X), float32(p.Y)
	rr, k := float32(r), float32(r*kappa)
	if reverse {
		k = -k
		c.z.MoveTo(cx+rr, cy)
		c.z.CubeTo(cx+rr, cy+k, cx-k, cy-rr, cx, cy-rr)
		c.z.CubeTo(cx+k, cy-rr, cx-rr, cy+k, cx-rr, cy)
		c.z.CubeTo(cx-rr, cy-k, cx+k, cy+rr, cx, cy+rr)
		c.z.CubeTo(cx-k, cy+rr, cx+rr, cy-k, cx+rr, cy)
		c.z.ClosePath()
		return
	}
	c.z.MoveTo(cx+rr, cy)
	c.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	c.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	c.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	c.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	c.z.ClosePath()
}

func (c *Canvas) polygon(pts []graphics.Offset) {
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
}

// signedArea is positive for the same winding circle uses when not reversed.
func signedArea(pts []graphics.Offset) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
