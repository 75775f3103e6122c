package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyGravityAndLegality(t *testing.T) {
	b := NewBoard(DefaultGameConfig())
	require.NoError(t, b.Apply(Move{Position: Position{X: 5, Y: 0}, Color: Black}))

	err := b.Apply(Move{Position: Position{X: 4, Y: 0}, Color: White})
	assert.NoError(t, err)

	err = b.Apply(Move{Position: Position{X: 5, Y: 0}, Color: Black})
	assert.ErrorIs(t, err, ErrIllegalMove)

	err = b.Apply(Move{Position: Position{X: 2, Y: 0}, Color: White})
	assert.ErrorIs(t, err, ErrIllegalMove, "cell above an empty cell is not yet playable")
}

func TestApplyRejectsNAColor(t *testing.T) {
	b := NewBoard(DefaultGameConfig())
	err := b.Apply(Move{Position: Position{X: 5, Y: 0}, Color: NA})
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestWinnerHorizontal(t *testing.T) {
	b := NewBoard(DefaultGameConfig())
	moves := []Move{
		{Position: Position{X: 5, Y: 0}, Color: Black},
		{Position: Position{X: 5, Y: 1}, Color: Black},
		{Position: Position{X: 5, Y: 2}, Color: Black},
		{Position: Position{X: 5, Y: 3}, Color: Black},
	}
	for i, m := range moves {
		require.NoError(t, b.Apply(m))
		winner, found := b.WinnerAfterLastMove()
		if i < len(moves)-1 {
			assert.False(t, found)
		} else {
			assert.True(t, found)
			assert.Equal(t, Black, winner)
		}
	}
}

func TestWinnerDiagonal(t *testing.T) {
	b := NewBoard(DefaultGameConfig())
	// Build a rising diagonal of black discs at (5,0) (4,1) (3,2) (2,3)
	// using white filler discs as support.
	fillers := []Move{
		{Position: Position{X: 5, Y: 1}, Color: White},
		{Position: Position{X: 5, Y: 2}, Color: White},
		{Position: Position{X: 4, Y: 2}, Color: White},
		{Position: Position{X: 5, Y: 3}, Color: White},
		{Position: Position{X: 4, Y: 3}, Color: White},
		{Position: Position{X: 3, Y: 3}, Color: White},
	}
	for _, m := range fillers {
		require.NoError(t, b.Apply(m))
	}
	diag := []Move{
		{Position: Position{X: 5, Y: 0}, Color: Black},
		{Position: Position{X: 4, Y: 1}, Color: Black},
		{Position: Position{X: 3, Y: 2}, Color: Black},
		{Position: Position{X: 2, Y: 3}, Color: Black},
	}
	for i, m := range diag {
		require.NoError(t, b.Apply(m))
		winner, found := b.WinnerAfterLastMove()
		if i < len(diag)-1 {
			assert.False(t, found)
		} else {
			assert.True(t, found)
			assert.Equal(t, Black, winner)
		}
	}
}

func TestWinnerTieOnFullBoard(t *testing.T) {
	config := NewGameConfig(1, 4)
	b := NewBoard(config)
	moves := []Move{
		{Position: Position{X: 0, Y: 0}, Color: Black},
		{Position: Position{X: 0, Y: 1}, Color: White},
		{Position: Position{X: 0, Y: 2}, Color: Black},
		{Position: Position{X: 0, Y: 3}, Color: White},
	}
	for _, m := range moves {
		require.NoError(t, b.Apply(m))
	}
	winner, found := b.WinnerAfterLastMove()
	assert.True(t, found)
	assert.Equal(t, NA, winner)
}

func TestSnapshotDeepcopyIsIndependent(t *testing.T) {
	b := NewBoard(DefaultGameConfig())
	require.NoError(t, b.Apply(Move{Position: Position{X: 5, Y: 0}, Color: Black}))

	snap := b.Snapshot(true)
	require.NoError(t, b.Apply(Move{Position: Position{X: 5, Y: 1}, Color: White}))

	_, ok := snap.Get(Position{X: 5, Y: 1})
	assert.False(t, ok, "deep snapshot must not observe later board mutation")
}

func TestDeepcopyIndependentBoards(t *testing.T) {
	b := NewBoard(DefaultGameConfig())
	require.NoError(t, b.Apply(Move{Position: Position{X: 5, Y: 0}, Color: Black}))

	cp := b.Deepcopy()
	require.NoError(t, cp.Apply(Move{Position: Position{X: 5, Y: 1}, Color: White}))

	assert.Len(t, b.Moves(), 1)
	assert.Len(t, cp.Moves(), 2)
}
