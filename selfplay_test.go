package c4zero

import (
	"testing"

	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/mcts"
	"github.com/alphabeth/c4zero/training"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayEpochRecordsAGame(t *testing.T) {
	config := game.NewGameConfig(2, 2)
	ev := eval.NewUniform(config.ActionSpace())
	cfg := mcts.DefaultConfig()
	cfg.Iterations = 10

	black := NewMCTSPolicy(game.Black, ev, cfg, 1, false, "")
	white := NewMCTSPolicy(game.White, ev, cfg, 2, false, "")

	buf := training.NewExperienceBuffer(config)
	winner, err := PlayEpoch(config, black, white, buf, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, []game.Color{game.Black, game.White, game.NA}, winner)

	var records []string
	buf.Report(func(line string) { records = append(records, line) })
	assert.NotEmpty(t, records)
}

func TestPlayEpochDetectsDuplicateOpenings(t *testing.T) {
	config := game.NewGameConfig(1, 4)
	black := NewRandomPolicy(game.Black, 1, "")
	white := NewRandomPolicy(game.White, 1, "")
	buf := training.NewExperienceBuffer(config)
	dup := training.NewDupDetector(2)

	_, err := PlayEpoch(config, black, white, buf, dup, nil)
	require.NoError(t, err)

	// Same seeds, same board shape: the deterministic random policies
	// reproduce the identical opening, which the detector must catch.
	black2 := NewRandomPolicy(game.Black, 1, "")
	white2 := NewRandomPolicy(game.White, 1, "")
	_, err = PlayEpoch(config, black2, white2, buf, dup, nil)
	assert.ErrorIs(t, err, ErrDuplicateGame)
}
