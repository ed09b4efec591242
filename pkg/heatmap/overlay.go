package heatmap

import (
	"image"
	"log"

	"gocv.io/x/gocv"

	"github.com/matchlens/matchlens/pkg/track"
)

//FadeFrames is the frame index past which the accumulator starts decaying,
//and DecayFactor the elementwise multiplier applied once per decayed frame.
//Before the threshold the accumulator warms up undisturbed; after it the
//overlay emphasizes recent activity over the all-time total.
const (
	FadeFrames  = 300
	DecayFactor = 0.995
)

//overlayAlpha is the blend weight of the heat layer against the source frame
const overlayAlpha = 0.3

//Compositor maintains one decaying occupancy accumulator across a full frame
//sequence and blends its colorized image onto each video frame. Frame k's
//accumulator state depends on frame k-1's, so Apply must be called once per
//frame in strict order. Construct a fresh Compositor per analysis run.
type Compositor struct {
	acc         *Grid
	frameWidth  float64
	frameHeight float64
	frameIdx    int
}

//NewCompositor returns a Compositor with a zeroed accumulator, using given
//reference frame dimensions to rescale pixel positions into grid units
func NewCompositor(frameWidth, frameHeight float64) *Compositor {
	return &Compositor{
		acc:         NewGrid(),
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
	}
}

//ingest advances the accumulator by one frame: every player with a usable
//pixel position increments its cell (out-of-range coordinates are skipped,
//not clamped), then past the fade threshold the whole grid decays once.
func (c *Compositor) ingest(players track.Frame) {
	for _, obs := range players {
		if obs.Position == nil {
			continue
		}

		bx := int(obs.Position.X / c.frameWidth * GridW)
		by := int(obs.Position.Y / c.frameHeight * GridH)
		c.acc.Inc(bx, by)
	}

	if c.frameIdx > FadeFrames {
		c.acc.Scale(DecayFactor)
	}

	c.frameIdx++
}

//Apply consumes the next frame in sequence and returns it blended with the
//live heat overlay. While the accumulator is still empty the frame is
//returned as an unmodified copy. Caller owns the returned Mat.
func (c *Compositor) Apply(frame gocv.Mat, players track.Frame) gocv.Mat {
	c.ingest(players)

	out := frame.Clone()

	if c.acc.Max() == 0 {
		return out
	}

	gray, err := gocv.NewMatFromBytes(GridH, GridW, gocv.MatTypeCV8UC1, grayBytes(c.acc.Normalized()))
	if err != nil {
		log.Printf("Compositor.Apply: Error, got '%v'", err)
		return out
	}
	defer gray.Close()

	colored := gocv.NewMat()
	defer colored.Close()
	gocv.ApplyColorMap(gray, &colored, gocv.ColormapJet)

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(colored, &resized, image.Pt(frame.Cols(), frame.Rows()), 0, 0, gocv.InterpolationCubic)

	gocv.AddWeighted(out, 1-overlayAlpha, resized, overlayAlpha, 0, &out)

	return out
}

//Accumulator exposes the running grid for inspection
func (c *Compositor) Accumulator() *Grid {
	return c.acc
}
