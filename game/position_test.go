package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveStringRoundTrip(t *testing.T) {
	m := Move{Position: Position{X: 3, Y: 4}, Color: Black}
	assert.Equal(t, "b(3,4)", m.String())

	parsed, err := ParseMove(m.String())
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestParseMoveAcceptsAtForm(t *testing.T) {
	parsed, err := ParseMove("w@(1,2)")
	require.NoError(t, err)
	assert.Equal(t, Move{Position: Position{X: 1, Y: 2}, Color: White}, parsed)
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	_, err := ParseMove("not a move")
	assert.ErrorIs(t, err, ErrInvalidMoveString)
}

func TestColorReverse(t *testing.T) {
	assert.Equal(t, White, Black.Reverse())
	assert.Equal(t, Black, White.Reverse())
}

func TestColorReversePanicsOnNA(t *testing.T) {
	assert.Panics(t, func() { NA.Reverse() })
}
