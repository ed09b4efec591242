package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayBytes(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	g.Add(10, 10)
	g.Add(10, 10)
	g.Add(20, 5)

	data := grayBytes(g.Normalized())
	require.Len(t, data, GridH*GridW)

	assert.Equal(t, byte(255), data[10*GridW+10])
	assert.Equal(t, byte(127), data[5*GridW+20])
	assert.Equal(t, byte(0), data[0])
}

func TestCompositeBytes(t *testing.T) {
	t.Parallel()

	team1 := NewGrid()
	team1.Add(10, 10)

	//team 2 peaks higher in absolute counts but both normalize to their own max
	team2 := NewGrid()
	for i := 0; i < 5; i++ {
		team2.Add(30, 40)
	}

	data := compositeBytes(team1, team2)
	require.Len(t, data, GridH*GridW*3)

	//team 1's peak saturates the blue channel at its cell
	i1 := (10*GridW + 10) * 3
	assert.Equal(t, byte(255), data[i1])
	assert.Equal(t, byte(0), data[i1+1])
	assert.Equal(t, byte(0), data[i1+2])

	//team 2's peak saturates the red channel at its cell
	i2 := (40*GridW + 30) * 3
	assert.Equal(t, byte(0), data[i2])
	assert.Equal(t, byte(0), data[i2+1])
	assert.Equal(t, byte(255), data[i2+2])

	//empty cells stay black
	assert.Equal(t, byte(0), data[0])
	assert.Equal(t, byte(0), data[1])
	assert.Equal(t, byte(0), data[2])
}
