package mcts

import (
	"strings"
	"testing"

	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotRendersRootAndChildren(t *testing.T) {
	config := game.NewGameConfig(2, 2)
	ev := eval.NewUniform(config.ActionSpace())
	cfg := DefaultConfig()
	cfg.Iterations = 10

	tr := NewTree(game.Black, ev, cfg, 1)
	board := config.NewBoard()
	_, err := tr.NextPosition(board, false)
	require.NoError(t, err)

	dot, err := tr.Dot()
	require.NoError(t, err)
	assert.True(t, strings.Contains(dot, "digraph"))
	assert.True(t, strings.Contains(dot, "->"), "expanded children must appear as edges")
}

func TestDotOnEmptyTree(t *testing.T) {
	ev := eval.NewUniform(4)
	tr := NewTree(game.Black, ev, DefaultConfig(), 1)
	dot, err := tr.Dot()
	require.NoError(t, err)
	assert.NotEmpty(t, dot)
}
