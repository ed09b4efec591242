package video

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestReadMissingSource(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "missing.mp4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestSaveEmptyFrameSequence(t *testing.T) {
	t.Parallel()

	err := Save([]gocv.Mat{}, filepath.Join(t.TempDir(), "out.avi"), 24)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyFrameSequence)
}
