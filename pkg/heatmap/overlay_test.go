package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchlens/matchlens/pkg/track"
)

func pixelFrame(id int, x, y float64) track.Frame {
	return track.Frame{id: &track.Observation{ID: id, Position: &track.Point{X: x, Y: y}}}
}

func TestCompositorIngest(t *testing.T) {
	t.Parallel()

	t.Run("pixel positions increment their grid cell", func(t *testing.T) {
		t.Parallel()
		c := NewCompositor(1920, 1080)

		c.ingest(pixelFrame(1, 960, 540))
		c.ingest(pixelFrame(1, 960, 540))

		assert.Equal(t, 2.0, c.Accumulator().At(54, 34))
		assert.Equal(t, 2, c.Accumulator().Count())
	})

	t.Run("out-of-range positions are skipped, not clamped", func(t *testing.T) {
		t.Parallel()
		c := NewCompositor(1920, 1080)

		c.ingest(pixelFrame(1, -40, 540))
		c.ingest(pixelFrame(1, 5000, 540))

		assert.Zero(t, c.Accumulator().Count())
		assert.Equal(t, 2, c.Accumulator().Dropped())
	})

	t.Run("observations without a pixel position are ignored", func(t *testing.T) {
		t.Parallel()
		c := NewCompositor(1920, 1080)

		c.ingest(track.Frame{1: &track.Observation{ID: 1, PositionTransformed: &track.Point{X: 10, Y: 10}}})

		assert.Zero(t, c.Accumulator().Count())
	})

	t.Run("no decay up to the fade threshold", func(t *testing.T) {
		t.Parallel()
		c := NewCompositor(1920, 1080)
		c.ingest(pixelFrame(1, 100, 100))
		before := c.Accumulator().Max()

		for c.frameIdx <= FadeFrames {
			c.ingest(track.Frame{})
		}

		assert.Equal(t, before, c.Accumulator().Max())
	})

	t.Run("past the threshold every cell decays by the factor", func(t *testing.T) {
		t.Parallel()
		c := NewCompositor(1920, 1080)
		c.ingest(pixelFrame(1, 100, 100))
		c.ingest(pixelFrame(2, 1800, 1000))
		c.frameIdx = FadeFrames + 1

		before := make(map[[2]int]float64)
		for y := 0; y < GridH; y++ {
			for x := 0; x < GridW; x++ {
				if v := c.acc.At(x, y); v != 0 {
					before[[2]int{x, y}] = v
				}
			}
		}
		require.NotEmpty(t, before)

		c.ingest(track.Frame{}) //no new increments, decay only

		for cell, v := range before {
			assert.InDelta(t, v*DecayFactor, c.acc.At(cell[0], cell[1]), 1e-12)
		}
	})

	t.Run("ingest decays once per frame in sequence", func(t *testing.T) {
		t.Parallel()
		c := NewCompositor(1920, 1080)
		c.ingest(pixelFrame(1, 100, 100))
		start := c.acc.Max()
		c.frameIdx = FadeFrames + 1

		for i := 0; i < 10; i++ {
			c.ingest(track.Frame{})
		}

		want := start
		for i := 0; i < 10; i++ {
			want *= DecayFactor
		}
		assert.InDelta(t, want, c.acc.Max(), 1e-12)
	})
}
