package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matchlens/matchlens/pkg/possession"
)

//WritePossessionTimeline renders each team's running ball-control share over
//the frame sequence to a PNG chart. Frames before the first assignment carry
//no share and are skipped.
func WritePossessionTimeline(seq possession.Sequence, outPath string) error {
	if len(seq) == 0 {
		return fmt.Errorf("WritePossessionTimeline: empty possession sequence")
	}

	p := plot.New()
	p.Title.Text = "Team Ball Control"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Possession Share"
	p.Y.Min = 0
	p.Y.Max = 1

	pts1 := make(plotter.XYs, 0, len(seq))
	pts2 := make(plotter.XYs, 0, len(seq))
	for i := range seq {
		t1, t2 := seq.Shares(i)
		if t1+t2 == 0 { //no possession resolved yet
			continue
		}
		pts1 = append(pts1, plotter.XY{X: float64(i), Y: t1})
		pts2 = append(pts2, plotter.XY{X: float64(i), Y: t2})
	}

	line1, err := plotter.NewLine(pts1)
	if err != nil {
		return fmt.Errorf("WritePossessionTimeline: %w", err)
	}
	line1.Color = color.RGBA{R: 30, G: 60, B: 200, A: 255}
	line1.Width = vg.Points(1)
	p.Add(line1)
	p.Legend.Add("Team 1", line1)

	line2, err := plotter.NewLine(pts2)
	if err != nil {
		return fmt.Errorf("WritePossessionTimeline: %w", err)
	}
	line2.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	line2.Width = vg.Points(1)
	p.Add(line2)
	p.Legend.Add("Team 2", line2)

	p.Legend.Top = true

	if err := p.Save(14*vg.Inch, 6*vg.Inch, outPath); err != nil {
		return fmt.Errorf("WritePossessionTimeline: save plot: %w", err)
	}

	return nil
}
