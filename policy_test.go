package c4zero

import (
	"strings"
	"testing"

	"github.com/alphabeth/c4zero/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPolicyOnlyPicksLegalPositions(t *testing.T) {
	config := game.DefaultGameConfig()
	board := config.NewBoard()
	p := NewRandomPolicy(game.Black, 1, "")

	for i := 0; i < 20; i++ {
		pos, err := p.NextPosition(board)
		require.NoError(t, err)
		assert.Contains(t, board.LegalPositions(), pos)
	}
}

func TestRandomPolicyErrorsOnFullBoard(t *testing.T) {
	config := game.NewGameConfig(1, 1)
	board := config.NewBoard()
	require.NoError(t, board.Apply(game.Move{Position: game.Position{X: 0, Y: 0}, Color: game.Black}))

	p := NewRandomPolicy(game.White, 1, "")
	_, err := p.NextPosition(board)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestHumanPolicyReprompts(t *testing.T) {
	config := game.NewGameConfig(2, 2)
	board := config.NewBoard()
	require.NoError(t, board.Apply(game.Move{Position: game.Position{X: 1, Y: 0}, Color: game.Black}))

	in := strings.NewReader("not-a-number\n5\n0\n")
	var out strings.Builder
	p := NewHumanPolicy(game.White, in, &out, "")

	pos, err := p.NextPosition(board)
	require.NoError(t, err)
	assert.Equal(t, game.Position{X: 0, Y: 0}, pos)
	assert.Contains(t, out.String(), "Try again")
}
