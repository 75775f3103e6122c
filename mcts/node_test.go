package mcts

import (
	"testing"

	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallBoard() (*game.Board, game.GameConfig) {
	config := game.NewGameConfig(1, 3)
	return game.NewBoard(config), config
}

func TestNewNodeRejectsFullBoard(t *testing.T) {
	board, config := smallBoard()
	for y := 0; y < config.Columns; y++ {
		require.NoError(t, board.Apply(game.Move{Position: game.Position{X: 0, Y: y}, Color: game.Black}))
	}
	_, err := NewNode(board, game.White, eval.NewUniform(config.ActionSpace()), nil, false)
	assert.ErrorIs(t, err, game.ErrBoardFull)
}

func TestSelectTiesBreakByFirstOccurrence(t *testing.T) {
	board, config := smallBoard()
	n, err := NewNode(board, game.Black, eval.NewUniform(config.ActionSpace()), nil, false)
	require.NoError(t, err)

	// All priors, visits and totals are equal (uniform policy, nothing
	// visited yet), so PUCT scores tie and the first legal position
	// wins.
	assert.Equal(t, game.Position{X: 0, Y: 0}, n.Select(1.0))
}

func TestBackupShiftsSelectionTowardHigherQ(t *testing.T) {
	board, config := smallBoard()
	n, err := NewNode(board, game.Black, eval.NewUniform(config.ActionSpace()), nil, false)
	require.NoError(t, err)

	n.Backup(game.Position{X: 0, Y: 2}, 1.0)
	// With a small exploration constant, the single backed-up win at
	// column 2 should now dominate the tie among untouched columns.
	assert.Equal(t, game.Position{X: 0, Y: 2}, n.Select(0.1))
}

func TestExpandInstallsChildOnce(t *testing.T) {
	board, config := smallBoard()
	n, err := NewNode(board, game.Black, eval.NewUniform(config.ActionSpace()), nil, false)
	require.NoError(t, err)

	pos := game.Position{X: 0, Y: 0}
	assert.Nil(t, n.childOf(pos))

	newBoard := board.Deepcopy()
	require.NoError(t, newBoard.Apply(game.Move{Position: pos, Color: game.Black}))

	child, err := n.expand(pos, newBoard, eval.NewUniform(config.ActionSpace()), nil)
	require.NoError(t, err)
	assert.Equal(t, game.White, child.Side())
	assert.Same(t, child, n.childOf(pos))
}

func TestMarkTerminalHidesChild(t *testing.T) {
	board, config := smallBoard()
	n, err := NewNode(board, game.Black, eval.NewUniform(config.ActionSpace()), nil, false)
	require.NoError(t, err)

	pos := game.Position{X: 0, Y: 1}
	n.markTerminal(pos)
	assert.Nil(t, n.childOf(pos))
}

func TestBestByVisitsPicksMaxCount(t *testing.T) {
	board, config := smallBoard()
	n, err := NewNode(board, game.Black, eval.NewUniform(config.ActionSpace()), nil, false)
	require.NoError(t, err)

	n.Backup(game.Position{X: 0, Y: 1}, 0)
	n.Backup(game.Position{X: 0, Y: 1}, 0)
	n.Backup(game.Position{X: 0, Y: 0}, 0)

	assert.Equal(t, game.Position{X: 0, Y: 1}, n.BestByVisits())
}
