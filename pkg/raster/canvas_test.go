package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/theme"
)

var (
	black = graphics.ColorBlack
	white = graphics.ColorWhite
)

func assertPixel(t *testing.T, c *Canvas, x, y int, want graphics.Color) {
	t.Helper()
	got := c.Image().RGBAAt(x, y)
	w := want.NRGBA()
	near := func(a, b uint8) bool { return math.Abs(float64(a)-float64(b)) <= 2 }
	assert.Truef(t, near(got.R, w.R) && near(got.G, w.G) && near(got.B, w.B) && near(got.A, w.A),
		"pixel (%d,%d) = %v, want %v", x, y, got, w)
}

func strokePaint(width float64, lineCap graphics.StrokeCap) graphics.Paint {
	p := graphics.DefaultPaint()
	p.Style = graphics.PaintStyleStroke
	p.StrokeWidth = width
	p.StrokeCap = lineCap
	return p
}

func TestClear(t *testing.T) {
	c := New(10, 10)
	assert.Equal(t, graphics.Size{Width: 10, Height: 10}, c.Size())
	c.Clear(graphics.RGB(0x12, 0x34, 0x56))
	assertPixel(t, c, 0, 0, graphics.RGB(0x12, 0x34, 0x56))
	assertPixel(t, c, 9, 9, graphics.RGB(0x12, 0x34, 0x56))
}

func TestFilledCircle(t *testing.T) {
	c := New(100, 100)
	c.Clear(black)
	c.DrawCircle(graphics.Offset{X: 50, Y: 50}, 30, graphics.DefaultPaint())

	assertPixel(t, c, 50, 50, white)
	assertPixel(t, c, 70, 50, white)
	assertPixel(t, c, 5, 5, black)
	assertPixel(t, c, 50, 85, black)
}

func TestStrokedCircleLeavesHole(t *testing.T) {
	c := New(100, 100)
	c.Clear(black)
	c.DrawCircle(graphics.Offset{X: 50, Y: 50}, 30, strokePaint(4, graphics.CapButt))

	assertPixel(t, c, 50, 50, black)
	assertPixel(t, c, 80, 50, white)
	assertPixel(t, c, 50, 19, white)
}

func TestLineFollowsTransform(t *testing.T) {
	c := New(100, 100)
	c.Clear(black)
	c.Save()
	c.Translate(50, 50)
	c.Rotate(math.Pi / 2)
	c.DrawLine(graphics.Offset{}, graphics.Offset{Y: -40}, strokePaint(4, graphics.CapButt))
	c.Restore()

	// Pointing up then rotated a quarter turn clockwise: the line runs right.
	assertPixel(t, c, 70, 50, white)
	assertPixel(t, c, 88, 49, white)
	assertPixel(t, c, 50, 30, black)
	assertPixel(t, c, 30, 50, black)
	assertPixel(t, c, 90, 50, black)
}

func TestRoundCapExtendsLine(t *testing.T) {
	c := New(100, 100)
	c.Clear(black)
	c.DrawLine(graphics.Offset{X: 10, Y: 50}, graphics.Offset{X: 90, Y: 50}, strokePaint(6, graphics.CapRound))

	assertPixel(t, c, 90, 50, white)
	assertPixel(t, c, 9, 50, white)
	// Overlap between cap and body must not cancel out.
	assertPixel(t, c, 10, 50, white)
}

func TestScaleAffectsStrokeWidth(t *testing.T) {
	c := New(100, 100)
	c.Clear(black)
	c.Scale(2, 2)
	c.DrawLine(graphics.Offset{X: 5, Y: 25}, graphics.Offset{X: 45, Y: 25}, strokePaint(4, graphics.CapButt))

	assertPixel(t, c, 50, 46, white)
	assertPixel(t, c, 50, 53, white)
	assertPixel(t, c, 50, 56, black)
}

func TestDrawTextStaysInLineBox(t *testing.T) {
	c := New(200, 60)
	c.Clear(black)
	top, size := 10.0, 26.0
	c.DrawText("12:34:56", graphics.Offset{X: 100, Y: top}, graphics.TextStyle{
		Color:    white,
		FontSize: size,
		Align:    graphics.TextAlignCenter,
	})

	lit := 0
	minX, maxX := 200, 0
	b := c.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.Image().RGBAAt(x, y).R < 128 {
				continue
			}
			lit++
			minX, maxX = min(minX, x), max(maxX, x)
			require.GreaterOrEqualf(t, y, int(top), "text pixel above line box at (%d,%d)", x, y)
			require.Lessf(t, y, int(top+size)+1, "text pixel below line box at (%d,%d)", x, y)
		}
	}
	require.Positive(t, lit, "expected text pixels")
	// Centered on x=100 within a couple of pixels.
	assert.InDelta(t, 100, float64(minX+maxX)/2, 6)
}

func TestDegenerateInputs(t *testing.T) {
	c := New(0, 0)
	assert.True(t, c.Size().IsEmpty())
	assert.NotPanics(t, func() {
		c.Clear(white)
		c.DrawCircle(graphics.Offset{}, 10, graphics.DefaultPaint())
		c.DrawLine(graphics.Offset{}, graphics.Offset{X: 1}, strokePaint(1, graphics.CapRound))
		c.DrawText("x", graphics.Offset{}, graphics.TextStyle{FontSize: 12})
	})

	c = New(20, 20)
	c.Clear(black)
	assert.NotPanics(t, func() {
		c.Restore()
		c.DrawCircle(graphics.Offset{X: 10, Y: 10}, 0, graphics.DefaultPaint())
		c.DrawLine(graphics.Offset{X: 10, Y: 10}, graphics.Offset{X: 10, Y: 10}, strokePaint(2, graphics.CapButt))
		c.DrawText("", graphics.Offset{}, graphics.TextStyle{FontSize: 12})
	})
	assertPixel(t, c, 10, 10, black)
}

func TestPaintsClockFace(t *testing.T) {
	palette := theme.DefaultLightTheme().ClockPalette()
	style := clockface.DefaultStyle()
	style.ShowDigital = false
	c := New(100, 100)
	clockface.New(style).Paint(c, clock.DeriveDisplayState(clock.TimeOfDay{Hour: 3}, 0, palette))

	assertPixel(t, c, 0, 0, palette.Background)
	assertPixel(t, c, 50, 50, palette.Pivot)
	// The dial fills the area between the hands.
	assertPixel(t, c, 35, 65, palette.Dial)
}

func TestEncodeFormats(t *testing.T) {
	c := New(8, 6)
	c.Clear(graphics.RGB(200, 10, 20))

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(bytes.NewReader(b.Bytes())) },
	}
	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, c.Image(), format))
			img, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
			r, g, b, _ := img.At(3, 3).RGBA()
			assert.Equal(t, color.RGBA{R: 200, G: 10, B: 20, A: 255}, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, c.Image(), Format(9)))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{".bmp", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"gif", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Errorf(t, err, "ParseFormat(%q)", tt.in)
			continue
		}
		require.NoErrorf(t, err, "ParseFormat(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}

	f, err := FormatForPath("out/clock")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	f, err = FormatForPath("clock.tiff")
	require.NoError(t, err)
	assert.Equal(t, FormatTIFF, f)
	assert.Equal(t, "Format(7)", Format(7).String())
}
