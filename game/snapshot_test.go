package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStringRoundTrip(t *testing.T) {
	config := DefaultGameConfig()
	b := NewBoard(config)
	require.NoError(t, b.Apply(Move{Position: Position{X: 5, Y: 0}, Color: Black}))
	require.NoError(t, b.Apply(Move{Position: Position{X: 5, Y: 1}, Color: White}))

	snap := b.Snapshot(true)
	s := snap.String()
	assert.Equal(t, "b(5,0)^w(5,1)", s)

	parsed, err := ParseSnapshot(config, s)
	require.NoError(t, err)
	assert.Equal(t, snap.MoveCount(), parsed.MoveCount())

	color, ok := parsed.Get(Position{X: 5, Y: 0})
	require.True(t, ok)
	assert.Equal(t, Black, color)
}

func TestEmptySnapshotRoundTrip(t *testing.T) {
	config := DefaultGameConfig()
	snap, err := ParseSnapshot(config, "")
	require.NoError(t, err)
	assert.Equal(t, "", snap.String())
	assert.Equal(t, 0, snap.MoveCount())
}
