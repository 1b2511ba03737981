package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCubeProgression(t *testing.T) {
	c := NewCube()
	require.Equal(t, 1, c.Stake())
	require.True(t, c.CanDouble(White))
	require.True(t, c.CanDouble(Black))

	doubler := White
	for _, want := range []int{2, 4, 8, 16, 32} {
		var err error
		c, err = c.Double(doubler)
		require.NoError(t, err)
		require.Equal(t, CubeDoubled, c.State)
		require.Equal(t, want, c.Value)
		require.NotNil(t, c.Owner)
		require.Equal(t, doubler.Opponent(), *c.Owner)
		doubler = doubler.Opponent()
	}

	c, err := c.Double(doubler)
	require.NoError(t, err)
	require.Equal(t, CubeMaxxed, c.State)
	require.Equal(t, MaxCubeValue, c.Value)
	require.Nil(t, c.Owner)

	for _, p := range []Color{White, Black} {
		require.False(t, c.CanDouble(p))
		_, err = c.Double(p)
		require.ErrorIs(t, err, ErrCubeMaxxed)
	}
}

func TestCubeOwnership(t *testing.T) {
	c, err := NewCube().Double(Black)
	require.NoError(t, err)
	require.False(t, c.CanDouble(Black))

	_, err = c.Double(Black)
	require.ErrorIs(t, err, ErrCubeOwnership)
	require.Equal(t, 2, c.Value)

	c, err = c.Double(White)
	require.NoError(t, err)
	require.Equal(t, 4, c.Value)
	require.Equal(t, Black, *c.Owner)
}
