package video

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/matchlens/matchlens/pkg/possession"
)

var (
	whiteRGB = color.RGBA{255, 255, 255, 0}
	blackRGB = color.RGBA{0, 0, 0, 0}
)

//DrawEllipse plots an entity marker as a flattened ellipse under its bounding
//box, with an id label when id is non-negative (referees are drawn unlabeled)
func DrawEllipse(frame *gocv.Mat, bbox image.Rectangle, plotColor color.RGBA, id int) {
	centerX := (bbox.Min.X + bbox.Max.X) / 2
	width := bbox.Dx()

	center := image.Pt(centerX, bbox.Max.Y)
	axes := image.Pt(width, int(0.35*float64(width)))
	gocv.Ellipse(frame, center, axes, 0, -45, 235, plotColor, 2)

	if id < 0 {
		return
	}

	labelRect := image.Rect(centerX-20, bbox.Max.Y+5, centerX+20, bbox.Max.Y+25)
	gocv.Rectangle(frame, labelRect, plotColor, -1) //thickness -1 == filled rectangle

	text := fmt.Sprintf("%d", id)
	textX := centerX - 10
	if id > 99 {
		textX -= 10
	}
	gocv.PutText(frame, text, image.Pt(textX, bbox.Max.Y+20), gocv.FontHersheySimplex, 0.6, blackRGB, 2)
}

//DrawTriangle plots a downward pointer above a bounding box, used for the
//ball and for the player currently holding it
func DrawTriangle(frame *gocv.Mat, bbox image.Rectangle, plotColor color.RGBA) {
	x := (bbox.Min.X + bbox.Max.X) / 2
	y := bbox.Min.Y

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{{
		image.Pt(x, y),
		image.Pt(x-10, y-20),
		image.Pt(x+10, y-20),
	}})
	defer pts.Close()

	gocv.FillPoly(frame, pts, plotColor)
	gocv.Polylines(frame, pts, true, blackRGB, 2)
}

//DrawTeamBallControl blends a semi-opaque panel onto the frame's corner and
//prints each team's possession share up to the current frame
func DrawTeamBallControl(frame *gocv.Mat, frameNum int, seq possession.Sequence) {
	overlay := frame.Clone()
	defer overlay.Close()

	gocv.Rectangle(&overlay, image.Rect(1350, 850, 1900, 970), whiteRGB, -1)
	gocv.AddWeighted(overlay, 0.4, *frame, 0.6, 0, frame)

	team1, team2 := seq.Shares(frameNum)
	gocv.PutText(frame, fmt.Sprintf("Team 1 Ball Control: %.2f%%", team1*100), image.Pt(1400, 900), gocv.FontHersheySimplex, 1, blackRGB, 3)
	gocv.PutText(frame, fmt.Sprintf("Team 2 Ball Control: %.2f%%", team2*100), image.Pt(1400, 950), gocv.FontHersheySimplex, 1, blackRGB, 3)
}
