package render

import (
	"fmt"
	"image"

	"github.com/swdee/go-centroidtrack/tracker"
	"gocv.io/x/gocv"
)

// CountOverlay draws the running count as a banner in the top left
// corner of the image.  In bidirectional mode the up and down totals
// are shown separately
func CountOverlay(img *gocv.Mat, count tracker.Count, font Font) {

	var text string

	if count.Mode == tracker.Bidirectional {
		text = fmt.Sprintf("Up: %d  Down: %d", count.Up, count.Down)
	} else {
		text = fmt.Sprintf("Count: %d", count.Total)
	}

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	// banner rectangle the text is drawn on
	bRect := image.Rect(0, 0,
		textSize.X+font.LeftPad+font.RightPad,
		textSize.Y+font.TopPad+font.BottomPad)

	gocv.Rectangle(img, bRect, Black, -1)

	gocv.PutTextWithParams(img, text,
		image.Pt(font.LeftPad, textSize.Y+font.TopPad),
		font.Face, font.Scale, font.Color, font.Thickness,
		font.LineType, false)
}
