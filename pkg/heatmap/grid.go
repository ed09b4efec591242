package heatmap

import "gonum.org/v1/gonum/mat"

//Grid dimensions follow standard football pitch proportions in meters. A cell
//is one square meter of pitch.
const (
	GridW = 108
	GridH = 68
)

//MinSamples is the hard minimum of recorded positions an entity or team needs
//before a heatmap is rendered for it. Fleeting detections below it are noise.
const MinSamples = 10

//Grid is a fixed-resolution 2D occupancy histogram over the pitch, GridH rows
//by GridW columns of non-negative counts.
type Grid struct {
	data    *mat.Dense
	count   int
	dropped int
}

//NewGrid returns a zeroed occupancy grid
func NewGrid() *Grid {
	return &Grid{data: mat.NewDense(GridH, GridW, nil)}
}

//Add bins a continuous position already expressed in grid units. Positions
//outside [0,GridW)x[0,GridH) are dropped, counted only for diagnostics.
func (g *Grid) Add(x, y float64) {
	bx, by := int(x), int(y)
	if x < 0 || y < 0 || bx >= GridW || by >= GridH {
		g.dropped++
		return
	}

	g.data.Set(by, bx, g.data.At(by, bx)+1)
	g.count++
}

//Inc increments one cell by integer bin coordinates, skipping out-of-range
//coordinates
func (g *Grid) Inc(bx, by int) {
	if bx < 0 || by < 0 || bx >= GridW || by >= GridH {
		g.dropped++
		return
	}

	g.data.Set(by, bx, g.data.At(by, bx)+1)
	g.count++
}

//At returns the count at bin (bx, by)
func (g *Grid) At(bx, by int) float64 {
	return g.data.At(by, bx)
}

//Count returns the number of samples recorded in range
func (g *Grid) Count() int {
	return g.count
}

//Dropped returns the number of out-of-range samples discarded
func (g *Grid) Dropped() int {
	return g.dropped
}

//Max returns the largest cell value
func (g *Grid) Max() float64 {
	return mat.Max(g.data)
}

//Scale multiplies every cell by given factor in place
func (g *Grid) Scale(f float64) {
	g.data.Scale(f, g.data)
}

//Normalized returns a copy of the grid divided by its own maximum, so the
//argmax cell holds exactly 1.0. An all-zero grid stays all zero. Each grid is
//normalized against itself only, never against a shared scale.
func (g *Grid) Normalized() *mat.Dense {
	out := mat.NewDense(GridH, GridW, nil)
	max := g.Max()
	if max == 0 {
		return out
	}

	out.Scale(1/max, g.data)
	return out
}
