package graphics

// TextAlign positions a text run relative to its anchor point.
type TextAlign int

const (
	// TextAlignLeft places the anchor at the start of the run.
	TextAlignLeft TextAlign = iota
	// TextAlignCenter centers the run horizontally on the anchor.
	TextAlignCenter
)

// TextStyle describes how a single line of text is drawn.
//
// The anchor passed to DrawText is the top edge of the line box; FontSize is
// the line height in pixels.
type TextStyle struct {
	Color    Color
	FontSize float64
	Align    TextAlign
}
