package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	"github.com/matchlens/matchlens/pkg/track"
)

//renderScale upsamples the grid by this factor before drawing markings, one
//grid cell becomes a renderScale x renderScale pixel block
const renderScale = 10

var markingColor = color.RGBA{255, 255, 255, 0}

//StaticRenderer renders occupancy grids into false-color raster files with
//schematic pitch markings.
type StaticRenderer struct{}

//RenderIndividual writes one heatmap raster per qualifying player into given
//directory, creating it if absent
func (r StaticRenderer) RenderIndividual(occ *Occupancy, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0766); err != nil {
		return fmt.Errorf("RenderIndividual: %w", err)
	}

	for id, grid := range occ.Players {
		img := renderGrid(grid, gocv.ColormapHot)
		outPath := path.Join(outputDir, fmt.Sprintf("player_%d_heatmap.png", id))
		ok := gocv.IMWrite(outPath, img)
		img.Close()
		if !ok {
			return fmt.Errorf("RenderIndividual: could not write '%s'", outPath)
		}
	}

	return nil
}

//RenderTeams writes one heatmap raster per qualifying team into given
//directory, team 1 in a blue-toned colormap, team 2 in a red-toned one
func (r StaticRenderer) RenderTeams(occ *Occupancy, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0766); err != nil {
		return fmt.Errorf("RenderTeams: %w", err)
	}

	colormaps := map[int]gocv.ColormapTypes{
		track.TeamOne: gocv.ColormapOcean,
		track.TeamTwo: gocv.ColormapAutumn,
	}

	for team, grid := range occ.Teams {
		img := renderGrid(grid, colormaps[team])
		outPath := path.Join(outputDir, fmt.Sprintf("team_%d_heatmap.png", team))
		ok := gocv.IMWrite(outPath, img)
		img.Close()
		if !ok {
			return fmt.Errorf("RenderTeams: could not write '%s'", outPath)
		}
	}

	return nil
}

//RenderCombined writes a single tri-panel raster: team 1, team 2, and a
//two-channel composite where each team's grid occupies its own color channel
//(team 1 blue, team 2 red), each normalized to its own maximum. Needs both
//teams to qualify.
func (r StaticRenderer) RenderCombined(occ *Occupancy, outputDir string) error {
	team1, ok1 := occ.Teams[track.TeamOne]
	team2, ok2 := occ.Teams[track.TeamTwo]
	if !ok1 || !ok2 {
		log.Printf("RenderCombined: a team is below the sample threshold, skipping composite")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0766); err != nil {
		return fmt.Errorf("RenderCombined: %w", err)
	}

	panel1 := renderGrid(team1, gocv.ColormapOcean)
	defer panel1.Close()
	panel2 := renderGrid(team2, gocv.ColormapAutumn)
	defer panel2.Close()

	composite, err := gocv.NewMatFromBytes(GridH, GridW, gocv.MatTypeCV8UC3, compositeBytes(team1, team2))
	if err != nil {
		return fmt.Errorf("RenderCombined: %w", err)
	}
	defer composite.Close()

	panel3 := upsampleWithMarkings(composite)
	defer panel3.Close()

	left := gocv.NewMat()
	defer left.Close()
	gocv.Hconcat(panel1, panel2, &left)

	full := gocv.NewMat()
	defer full.Close()
	gocv.Hconcat(left, panel3, &full)

	outPath := path.Join(outputDir, "combined_team_heatmap.png")
	if !gocv.IMWrite(outPath, full) {
		return fmt.Errorf("RenderCombined: could not write '%s'", outPath)
	}

	return nil
}

//renderGrid colorizes a grid and upsamples it with markings. Caller owns the
//returned Mat.
func renderGrid(g *Grid, colormap gocv.ColormapTypes) gocv.Mat {
	gray, err := gocv.NewMatFromBytes(GridH, GridW, gocv.MatTypeCV8UC1, grayBytes(g.Normalized()))
	if err != nil {
		log.Printf("renderGrid: Error, got '%v'", err)
		return gocv.NewMat()
	}
	defer gray.Close()

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(gray, &colored, colormap)

	return upsampleWithMarkings(colored)
}

//upsampleWithMarkings resamples a grid-resolution image up to the raster size
//and draws the pitch markings on it. Cubic interpolation keeps the output
//smooth instead of blocky. Caller owns the returned Mat.
func upsampleWithMarkings(img gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.Resize(img, &out, image.Pt(GridW*renderScale, GridH*renderScale), 0, 0, gocv.InterpolationCubic)
	drawPitchMarkings(&out)
	return out
}

//drawPitchMarkings draws the schematic pitch: center circle, halfway line and
//the two penalty areas flush to the goal lines
func drawPitchMarkings(img *gocv.Mat) {
	w := GridW * renderScale
	h := GridH * renderScale

	gocv.Circle(img, image.Pt(w/2, h/2), w/10, markingColor, 2)
	gocv.Line(img, image.Pt(0, h/2), image.Pt(w, h/2), markingColor, 2)

	penaltyW := int(0.3 * float64(w))
	penaltyH := int(0.15 * float64(h))
	gocv.Rectangle(img, image.Rect(0, h/2-penaltyH/2, penaltyW, h/2+penaltyH/2), markingColor, 2)
	gocv.Rectangle(img, image.Rect(w-penaltyW, h/2-penaltyH/2, w, h/2+penaltyH/2), markingColor, 2)
}

//grayBytes flattens a normalized grid into row-major 8-bit intensities
func grayBytes(norm *mat.Dense) []byte {
	out := make([]byte, GridH*GridW)
	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			out[y*GridW+x] = byte(norm.At(y, x) * 255)
		}
	}
	return out
}

//compositeBytes builds BGR pixel data where team 1 occupies the blue channel
//and team 2 the red channel, each grid normalized independently to its own
//maximum
func compositeBytes(team1, team2 *Grid) []byte {
	n1 := team1.Normalized()
	n2 := team2.Normalized()

	out := make([]byte, GridH*GridW*3)
	for y := 0; y < GridH; y++ {
		for x := 0; x < GridW; x++ {
			i := (y*GridW + x) * 3
			out[i] = byte(n1.At(y, x) * 255)   //blue
			out[i+2] = byte(n2.At(y, x) * 255) //red
		}
	}
	return out
}
