package testing

import (
	"math"

	"github.com/go-drift/clockface/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Canvas implements graphics.Canvas and records every call as a DisplayOp.
// Numbers are rounded to two decimals so comparisons tolerate float noise.
type Canvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewCanvas returns an empty recording canvas of the given size.
func NewCanvas(size graphics.Size) *Canvas {
	return &Canvas{size: size}
}

// Ops returns the operations recorded so far.
func (c *Canvas) Ops() []DisplayOp {
	return c.ops
}

// OpsNamed returns the recorded operations whose Op equals name.
func (c *Canvas) OpsNamed(name string) []DisplayOp {
	var out []DisplayOp
	for _, op := range c.ops {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

// OpNames returns the Op field of every recorded operation in order.
func (c *Canvas) OpNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Op
	}
	return names
}

func (c *Canvas) record(op string, params map[string]any) {
	c.ops = append(c.ops, DisplayOp{Op: op, Params: params})
}

func (c *Canvas) Save()    { c.record("save", nil) }
func (c *Canvas) Restore() { c.record("restore", nil) }

func (c *Canvas) Translate(dx, dy float64) {
	c.record("translate", map[string]any{"dx": round2(dx), "dy": round2(dy)})
}

func (c *Canvas) Scale(sx, sy float64) {
	c.record("scale", map[string]any{"sx": round2(sx), "sy": round2(sy)})
}

func (c *Canvas) Rotate(radians float64) {
	c.record("rotate", map[string]any{"radians": round2(radians)})
}

func (c *Canvas) Clear(color graphics.Color) {
	c.record("clear", map[string]any{"color": color.Hex()})
}

func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.record("drawCircle", map[string]any{
		"cx":     round2(center.X),
		"cy":     round2(center.Y),
		"radius": round2(radius),
		"color":  paint.Color.Hex(),
		"style":  paint.Style.String(),
	})
}

func (c *Canvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.record("drawLine", map[string]any{
		"x1":     round2(start.X),
		"y1":     round2(start.Y),
		"x2":     round2(end.X),
		"y2":     round2(end.Y),
		"color":  paint.Color.Hex(),
		"stroke": round2(paint.StrokeWidth),
	})
}

func (c *Canvas) DrawText(text string, position graphics.Offset, style graphics.TextStyle) {
	c.record("drawText", map[string]any{
		"text":  text,
		"x":     round2(position.X),
		"y":     round2(position.Y),
		"color": style.Color.Hex(),
		"size":  round2(style.FontSize),
	})
}

func (c *Canvas) Size() graphics.Size {
	return c.size
}

// SerializeDisplayList replays a DisplayList through a recording Canvas.
func SerializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	canvas := NewCanvas(dl.Size())
	dl.Paint(canvas)
	return canvas.ops
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}
