package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-centroidtrack/tracker"
	"gocv.io/x/gocv"
)

// boxLabel holds the rendering details of a single box text label so
// labels can be drawn as the top most layer after all boxes
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// TrackerBoxes renders the bounding boxes around tracked objects with
// their id labels.  classNames may be nil when the host has no label
// file, in which case only the object id is shown
func TrackerBoxes(img *gocv.Mat, objects []*tracker.TrackedObject,
	classNames []string, font Font, lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0)

	for _, obj := range objects {

		boxLeft := int(obj.Rect.X1)
		boxTop := int(obj.Rect.Y1)
		boxRight := int(obj.Rect.X2)
		boxBottom := int(obj.Rect.Y2)

		// Get the color for this object
		useClr := ObjectColor(obj.ID)

		// draw rectangle around tracked object
		rect := image.Rect(boxLeft, boxTop, boxRight, boxBottom)
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("#%d", obj.ID)

		if classNames != nil && obj.Label < len(classNames) {
			text = fmt.Sprintf("%s %d", classNames[obj.Label], obj.ID)
		}

		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// Calculate the alignment of text label
		var centerX int

		switch font.Alignment {
		case Center:
			centerX = (boxLeft + boxRight) / 2

		case Right:
			centerX = boxRight - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

		case Left:
			fallthrough
		default:
			centerX = boxLeft + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
		}

		// Adjust the label position so the text is centered horizontally
		labelPosition := image.Pt(centerX-textSize.X/2, boxTop-font.BottomPad)

		// create box for placing text on
		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			boxTop-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, boxTop)

		// record label rendering details
		nextLabel := boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		}
		boxLabels = append(boxLabels, nextLabel)
	}

	// draw all precalculated box labels so they are the top most layer
	// on the image and don't get overlapped by box lines
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
