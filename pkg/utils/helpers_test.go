package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInSlice(t *testing.T) {
	t.Parallel()

	assert.True(t, InSlice("b", []string{"a", "b", "c"}))
	assert.False(t, InSlice("d", []string{"a", "b", "c"}))
	assert.False(t, InSlice("a", nil))
}

func TestListDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "match.mp4"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0766))

	names, err := ListDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"match.mp4", "sub"}, names)

	_, err = ListDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
