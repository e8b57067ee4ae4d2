package terminal

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/raster"
)

// halfBlock fills the top half of a cell; its foreground is the upper pixel
// and its background the lower one.
const halfBlock = "▀"

// Render replays list onto a cols x rows cell grid. Each cell shows two
// vertically stacked pixels, so the drawing is rasterized at cols x 2*rows
// and scaled uniformly to fit, centered.
func Render(list *graphics.DisplayList, cols, rows int) string {
	if list == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	canvas := raster.New(cols, rows*2)

	src := list.Size()
	if !src.IsEmpty() {
		dst := canvas.Size()
		k := math.Min(dst.Width/src.Width, dst.Height/src.Height)
		canvas.Save()
		canvas.Translate((dst.Width-src.Width*k)/2, (dst.Height-src.Height*k)/2)
		canvas.Scale(k, k)
		list.Paint(canvas)
		canvas.Restore()
	}

	img := canvas.Image()
	var b strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		// Adjacent cells with the same colors share one styled run.
		start := 0
		for x := 1; x <= cols; x++ {
			if x < cols && samePair(img, start, x, y) {
				continue
			}
			top, bottom := img.RGBAAt(start, 2*y), img.RGBAAt(start, 2*y+1)
			b.WriteString(cellStyle(top, bottom).Render(strings.Repeat(halfBlock, x-start)))
			start = x
		}
	}
	return b.String()
}

func samePair(img *image.RGBA, x1, x2, row int) bool {
	return img.RGBAAt(x1, 2*row) == img.RGBAAt(x2, 2*row) &&
		img.RGBAAt(x1, 2*row+1) == img.RGBAAt(x2, 2*row+1)
}

func cellStyle(top, bottom color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(top))).
		Background(lipgloss.Color(hex(bottom)))
}

func hex(c color.RGBA) string {
	return graphics.RGB(c.R, c.G, c.B).RGBHex()
}
