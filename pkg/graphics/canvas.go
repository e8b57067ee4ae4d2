package graphics

// Canvas records or renders drawing commands.
//
// Transforms compose in call order: after Translate(cx, cy) and Rotate(a),
// the point (0, -r) lands a distance r from (cx, cy) in direction a measured
// clockwise from straight up, since the y axis points down.
type Canvas interface {
	// Save pushes the current transform.
	Save()

	// Restore pops the most recent transform.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Scale scales the coordinate system by the given factors.
	Scale(sx, sy float64)

	// Rotate rotates the coordinate system by radians.
	Rotate(radians float64)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawText draws a single line of text anchored at position.
	DrawText(text string, position Offset, style TextStyle)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
