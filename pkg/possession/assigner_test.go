package possession

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchlens/matchlens/pkg/track"
)

func TestProximityAssigner(t *testing.T) {
	t.Parallel()

	ball := image.Rect(495, 495, 505, 505) //ball center at (500, 500)

	t.Run("assigns the nearest player inside the threshold", func(t *testing.T) {
		t.Parallel()
		players := track.Frame{
			1: &track.Observation{ID: 1, Bbox: image.Rect(480, 400, 520, 490)}, //feet ~20px away
			2: &track.Observation{ID: 2, Bbox: image.Rect(430, 380, 470, 460)}, //feet ~50px away
		}

		id, ok := ProximityAssigner{}.AssignBallToPlayer(players, ball)
		require.True(t, ok)
		assert.Equal(t, 1, id)
	})

	t.Run("no player inside the threshold", func(t *testing.T) {
		t.Parallel()
		players := track.Frame{
			1: &track.Observation{ID: 1, Bbox: image.Rect(0, 0, 40, 90)},
		}

		_, ok := ProximityAssigner{}.AssignBallToPlayer(players, ball)
		assert.False(t, ok)
	})

	t.Run("empty frame yields no assignment", func(t *testing.T) {
		t.Parallel()
		_, ok := ProximityAssigner{}.AssignBallToPlayer(track.Frame{}, ball)
		assert.False(t, ok)
	})

	t.Run("either bottom corner can qualify", func(t *testing.T) {
		t.Parallel()
		//bottom-right corner is next to the ball, bottom-left is far
		players := track.Frame{
			3: &track.Observation{ID: 3, Bbox: image.Rect(300, 400, 490, 500)},
		}

		id, ok := ProximityAssigner{}.AssignBallToPlayer(players, ball)
		require.True(t, ok)
		assert.Equal(t, 3, id)
	})
}
