// Package clockface paints an analog clock face with a digital readout onto
// a graphics.Canvas.
package clockface

import (
	"math"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/graphics"
)

// TickCount is the number of tick marks around the dial, one every 30°.
const TickCount = 12

// HandStyle sizes a hand relative to the dial radius.
type HandStyle struct {
	// Length is the hand length as a fraction of the dial radius.
	Length float64
	// Width is the stroke width as a fraction of the dial radius.
	Width float64
}

// Style holds the proportions of every part of the face. All lengths are
// fractions of the dial radius so the face scales with the canvas.
type Style struct {
	// Inset is the margin between the dial and its box, as a fraction of
	// the half-extent.
	Inset float64

	TickLength float64
	TickWidth  float64

	Hour   HandStyle
	Minute HandStyle
	Second HandStyle

	PivotRadius float64

	// ShowDigital reserves a strip below the dial for the HH:mm:ss readout.
	ShowDigital bool
	// FontSize is the readout height as a fraction of the dial radius.
	FontSize float64
}

// DefaultStyle returns the standard proportions: a short thick hour hand,
// a medium minute hand and a long thin second hand.
func DefaultStyle() Style {
	return Style{
		Inset:       0.06,
		TickLength:  0.1,
		TickWidth:   0.025,
		Hour:        HandStyle{Length: 0.5, Width: 0.07},
		Minute:      HandStyle{Length: 0.72, Width: 0.045},
		Second:      HandStyle{Length: 0.88, Width: 0.018},
		PivotRadius: 0.06,
		ShowDigital: true,
		FontSize:    0.24,
	}
}

// Layout is the resolved geometry of a face on a canvas.
type Layout struct {
	Center graphics.Offset
	Radius float64

	// TextAnchor is the top-center of the digital readout. Zero when the
	// readout is hidden.
	TextAnchor graphics.Offset
	FontSize   float64
}

// Painter draws DisplayStates. The zero value is not usable; use New.
type Painter struct {
	style Style
}

// New returns a Painter using style.
func New(style Style) *Painter {
	return &Painter{style: style}
}

// Style returns the painter's style.
func (p *Painter) Style() Style {
	return p.style
}

// Layout computes where the dial and readout go on a canvas of size.
func (p *Painter) Layout(size graphics.Size) Layout {
	face := size
	var fontSize, textHeight float64
	if p.style.ShowDigital {
		// The readout needs the radius and the radius needs the face height;
		// solve r = (H - k*r) / 2 * (1-inset) with k the strip height per
		// unit radius, then clamp by width.
		k := p.style.FontSize * 1.6
		shrink := 1 - p.style.Inset
		r := size.Height / 2 * shrink / (1 + k*shrink/2)
		r = math.Min(r, size.Width/2*shrink)
		fontSize = p.style.FontSize * r
		textHeight = k * r
		face.Height = size.Height - textHeight
	}
	radius := math.Max(face.ShortestSide()/2*(1-p.style.Inset), 0)
	l := Layout{
		Center: graphics.Offset{X: size.Width / 2, Y: face.Height / 2},
		Radius: radius,
	}
	if p.style.ShowDigital {
		l.FontSize = fontSize
		l.TextAnchor = graphics.Offset{X: size.Width / 2, Y: face.Height + (textHeight-fontSize)/2}
	}
	return l
}

// Paint draws one frame: background, dial, ticks, hour, minute and second
// hands, the pivot on top, then the digital readout.
func (p *Painter) Paint(canvas graphics.Canvas, state clock.DisplayState) {
	size := canvas.Size()
	colors := state.Palette
	canvas.Clear(colors.Background)
	if size.IsEmpty() {
		return
	}

	l := p.Layout(size)
	if l.Radius > 0 {
		dial := graphics.DefaultPaint()
		dial.Color = colors.Dial
		canvas.DrawCircle(l.Center, l.Radius, dial)

		p.paintTicks(canvas, l, colors.Ticks)
		p.paintHand(canvas, l, state.HourAngle, p.style.Hour, colors.HourHand)
		p.paintHand(canvas, l, state.MinuteAngle, p.style.Minute, colors.MinuteHand)
		p.paintHand(canvas, l, state.SecondAngle, p.style.Second, colors.SecondHand)

		pivot := graphics.DefaultPaint()
		pivot.Color = colors.Pivot
		canvas.DrawCircle(l.Center, p.style.PivotRadius*l.Radius, pivot)
	}

	if p.style.ShowDigital && l.FontSize > 0 {
		canvas.DrawText(state.Digital, l.TextAnchor, graphics.TextStyle{
			Color:    colors.Text,
			FontSize: l.FontSize,
			Align:    graphics.TextAlignCenter,
		})
	}
}

func (p *Painter) paintTicks(canvas graphics.Canvas, l Layout, color graphics.Color) {
	paint := strokePaint(color, p.style.TickWidth*l.Radius)
	paint.StrokeCap = graphics.CapButt
	outer := -l.Radius
	inner := -l.Radius * (1 - p.style.TickLength)
	for i := range TickCount {
		canvas.Save()
		canvas.Translate(l.Center.X, l.Center.Y)
		canvas.Rotate(graphics.DegreesToRadians(float64(i) * 360 / TickCount))
		canvas.DrawLine(graphics.Offset{Y: outer}, graphics.Offset{Y: inner}, paint)
		canvas.Restore()
	}
}

// paintHand draws a hand pointing straight up, rotated about the center.
func (p *Painter) paintHand(canvas graphics.Canvas, l Layout, degrees float64, hs HandStyle, color graphics.Color) {
	canvas.Save()
	canvas.Translate(l.Center.X, l.Center.Y)
	canvas.Rotate(graphics.DegreesToRadians(degrees))
	canvas.DrawLine(graphics.Offset{}, graphics.Offset{Y: -hs.Length * l.Radius}, strokePaint(color, hs.Width*l.Radius))
	canvas.Restore()
}

func strokePaint(color graphics.Color, width float64) graphics.Paint {
	paint := graphics.DefaultPaint()
	paint.Color = color
	paint.Style = graphics.PaintStyleStroke
	paint.StrokeWidth = math.Max(width, 1)
	paint.StrokeCap = graphics.CapRound
	return paint
}
