package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridAdd(t *testing.T) {
	t.Parallel()

	t.Run("single sample lands in exactly one bin", func(t *testing.T) {
		t.Parallel()
		g := NewGrid()
		g.Add(10, 10)

		require.Equal(t, 1, g.Count())
		for y := 0; y < GridH; y++ {
			for x := 0; x < GridW; x++ {
				if x == 10 && y == 10 {
					assert.Equal(t, 1.0, g.At(x, y))
				} else if g.At(x, y) != 0 {
					t.Fatalf("unexpected count at (%d,%d)", x, y)
				}
			}
		}
	})

	t.Run("fractional positions bin by floor", func(t *testing.T) {
		t.Parallel()
		g := NewGrid()
		g.Add(10.9, 67.2)
		assert.Equal(t, 1.0, g.At(10, 67))
	})

	t.Run("out-of-range samples are dropped without crashing", func(t *testing.T) {
		t.Parallel()
		g := NewGrid()
		g.Add(-1, 10)
		g.Add(10, -0.5)
		g.Add(float64(GridW), 10)
		g.Add(10, float64(GridH))
		g.Add(1e9, 1e9)

		assert.Zero(t, g.Count())
		assert.Equal(t, 5, g.Dropped())
		assert.Zero(t, g.Max())
	})

	t.Run("Inc skips out-of-range bins", func(t *testing.T) {
		t.Parallel()
		g := NewGrid()
		g.Inc(0, 0)
		g.Inc(GridW, 0)
		g.Inc(-1, 5)

		assert.Equal(t, 1, g.Count())
		assert.Equal(t, 2, g.Dropped())
		assert.Equal(t, 1.0, g.At(0, 0))
	})
}

func TestGridScale(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add(5, 5)
	g.Add(5, 5)
	g.Add(80, 40)

	g.Scale(0.995)

	assert.InDelta(t, 1.99, g.At(5, 5), 1e-12)
	assert.InDelta(t, 0.995, g.At(80, 40), 1e-12)
}

func TestGridNormalized(t *testing.T) {
	t.Parallel()

	t.Run("argmax cell is exactly one, the rest in [0,1)", func(t *testing.T) {
		t.Parallel()
		g := NewGrid()
		for i := 0; i < 4; i++ {
			g.Add(20, 30)
		}
		g.Add(50, 10)
		g.Add(50, 10)
		g.Add(3, 60)

		norm := g.Normalized()
		ones := 0
		for y := 0; y < GridH; y++ {
			for x := 0; x < GridW; x++ {
				v := norm.At(y, x)
				if v == 1.0 {
					ones++
					assert.Equal(t, 20, x)
					assert.Equal(t, 30, y)
					continue
				}
				assert.GreaterOrEqual(t, v, 0.0)
				assert.Less(t, v, 1.0)
			}
		}
		assert.Equal(t, 1, ones)
	})

	t.Run("all-zero grid normalizes to all zero", func(t *testing.T) {
		t.Parallel()
		norm := NewGrid().Normalized()
		for y := 0; y < GridH; y++ {
			for x := 0; x < GridW; x++ {
				if norm.At(y, x) != 0 {
					t.Fatalf("non-zero at (%d,%d)", x, y)
				}
			}
		}
	})

	t.Run("normalizing does not mutate the grid", func(t *testing.T) {
		t.Parallel()
		g := NewGrid()
		g.Add(1, 1)
		g.Add(1, 1)

		_ = g.Normalized()
		assert.Equal(t, 2.0, g.At(1, 1))
	})
}
