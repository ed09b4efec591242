package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchlens/matchlens/pkg/possession"
	"github.com/matchlens/matchlens/pkg/track"
)

func TestWritePossessionTimeline(t *testing.T) {
	t.Parallel()

	t.Run("writes a chart for a resolved sequence", func(t *testing.T) {
		t.Parallel()
		seq := possession.Sequence{
			track.TeamNone, track.TeamOne, track.TeamOne,
			track.TeamTwo, track.TeamOne, track.TeamTwo,
		}

		outPath := filepath.Join(t.TempDir(), "possession.png")
		require.NoError(t, WritePossessionTimeline(seq, outPath))

		info, err := os.Stat(outPath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("rejects an empty sequence", func(t *testing.T) {
		t.Parallel()
		err := WritePossessionTimeline(possession.Sequence{}, filepath.Join(t.TempDir(), "x.png"))
		assert.Error(t, err)
	})

	t.Run("fully unresolved sequence still produces a chart", func(t *testing.T) {
		t.Parallel()
		seq := possession.Sequence{track.TeamNone, track.TeamNone}
		outPath := filepath.Join(t.TempDir(), "empty.png")
		require.NoError(t, WritePossessionTimeline(seq, outPath))
	})
}
